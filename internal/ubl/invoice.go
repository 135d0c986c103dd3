package ubl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notuna/order-service/internal/entities"
)

const invoiceTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Order xmlns="urn:oasis:names:specification:ubl:schema:xsd:Order-2"
       xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
       xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
    <cbc:ID>PO-%d</cbc:ID>
    <cbc:IssueDate>%s</cbc:IssueDate>
    <cbc:OrderTypeCode>220</cbc:OrderTypeCode>
    <cbc:DocumentCurrencyCode>AUD</cbc:DocumentCurrencyCode>
    <cac:BuyerCustomerParty>
        <cac:Party>
            <cac:PartyName>
                <cbc:Name>%s</cbc:Name>
            </cac:PartyName>
            <cac:PartyTaxScheme>
                <cbc:CompanyID>%s</cbc:CompanyID>
                <cac:TaxScheme>
                    <cbc:ID>VAT</cbc:ID>
                </cac:TaxScheme>
            </cac:PartyTaxScheme>
        </cac:Party>
    </cac:BuyerCustomerParty>
    <cac:SellerSupplierParty>
        <cac:Party>
            <cac:PartyName>
                <cbc:Name>%s</cbc:Name>
            </cac:PartyName>
            <cac:PartyTaxScheme>
                <cbc:CompanyID>%s</cbc:CompanyID>
                <cac:TaxScheme>
                    <cbc:ID>VAT</cbc:ID>
                </cac:TaxScheme>
            </cac:PartyTaxScheme>
        </cac:Party>
    </cac:SellerSupplierParty>
    <cac:OrderLine>
        <cbc:ID>1</cbc:ID>
        <cac:LineItem>
            <cbc:ID>1</cbc:ID>
            <cbc:Quantity unitCode="EA">%d</cbc:Quantity>
            <cbc:LineExtensionAmount currencyID="AUD">%d</cbc:LineExtensionAmount>
            <cac:Item>
                <cbc:Description>%s</cbc:Description>
                <cbc:Name>%s</cbc:Name>
            </cac:Item>
            <cac:Price>
                <cbc:PriceAmount currencyID="AUD">%s</cbc:PriceAmount>
            </cac:Price>
            <cac:TaxTotal>
                <cbc:TaxAmount currencyID="AUD">%s</cbc:TaxAmount>
                <cac:TaxSubtotal>
                    <cbc:TaxableAmount currencyID="AUD">%d</cbc:TaxableAmount>
                    <cbc:TaxAmount currencyID="AUD">%s</cbc:TaxAmount>
                    <cac:TaxCategory>
                        <cbc:ID>S</cbc:ID>
                        <cbc:Percent>%d</cbc:Percent>
                        <cac:TaxScheme>
                            <cbc:ID>VAT</cbc:ID>
                        </cac:TaxScheme>
                    </cac:TaxCategory>
                </cac:TaxSubtotal>
            </cac:TaxTotal>
        </cac:LineItem>
    </cac:OrderLine>
</Order>`

// BuildInvoiceXML renders the Order-2 purchase order XML submitted to the
// invoice generation API. Tax and unit price are derived: tax is
// price*rate/100, unit price is price/quantity.
func BuildInvoiceXML(snap entities.OrderSnapshot) []byte {
	taxRate := parseTaxRate(snap.Product.TaxRate)
	totalTax := float64(snap.Price) * float64(taxRate) / 100

	var unitPrice float64
	if snap.Quantity != 0 {
		unitPrice = float64(snap.Price) / float64(snap.Quantity)
	}

	body := fmt.Sprintf(invoiceTemplate,
		snap.ID,
		isoDate(snap.OrderDate),
		snap.Buyer.Name,
		snap.Buyer.TaxID,
		snap.Seller.Name,
		snap.Seller.TaxID,
		snap.Quantity,
		snap.Price,
		snap.Product.Description,
		snap.Product.Description,
		formatAmount(unitPrice),
		formatAmount(totalTax),
		snap.Price,
		formatAmount(totalTax),
		taxRate,
	)
	return []byte(body)
}

// parseTaxRate reads the leading integer of a stored tax rate ("10", "10%").
func parseTaxRate(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	rate, _ := strconv.Atoi(s[:end])
	return rate
}

// formatAmount drops the decimal point for whole amounts ("150" not "150.00").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
