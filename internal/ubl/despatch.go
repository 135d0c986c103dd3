package ubl

import (
	"fmt"
	"strings"

	"github.com/notuna/order-service/internal/entities"
)

type PostalAddress struct {
	StreetName       string `json:"StreetName"`
	CityName         string `json:"CityName"`
	PostalZone       string `json:"PostalZone"`
	CountrySubentity string `json:"CountrySubentity"`
	AddressLine      string `json:"AddressLine"`
	Country          string `json:"Country"`
}

type PartyLegalEntity struct {
	RegistrationName string `json:"RegistrationName"`
}

type Party struct {
	PartyIdentification string           `json:"PartyIdentification"`
	PostalAddress       PostalAddress    `json:"PostalAddress"`
	PartyLegalEntity    PartyLegalEntity `json:"PartyLegalEntity"`
}

type DeliveryContact struct {
	Name           string `json:"Name"`
	Telephone      string `json:"Telephone"`
	ElectronicMail string `json:"ElectronicMail"`
}

type DeliveryCustomerParty struct {
	Party           Party           `json:"Party"`
	DeliveryContact DeliveryContact `json:"DeliveryContact"`
}

type DespatchSupplierParty struct {
	Party Party `json:"Party"`
}

type DespatchItem struct {
	Name string `json:"Name"`
}

type DespatchOrderLine struct {
	Item DespatchItem `json:"Item"`
}

// DespatchRequest is the payload shape the despatch advice API expects.
type DespatchRequest struct {
	OrderID               string                `json:"OrderID"`
	OrderIssueDate        string                `json:"orderIssueDate"`
	SalesOrderID          string                `json:"salesOrderId"`
	DeliveryCustomerParty DeliveryCustomerParty `json:"DeliveryCustomerParty"`
	DespatchSupplierParty DespatchSupplierParty `json:"DespatchSupplierParty"`
	OrderLine             DespatchOrderLine     `json:"OrderLine"`
}

// SplitPostalAddress applies the comma heuristic to a free-form address:
// "street, city, postcode" with fixed fallbacks for missing segments.
func SplitPostalAddress(address string) (street, city, postcode string) {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	street, city, postcode = "Unknown Street", "Unknown City", "0000"
	if len(parts) > 0 && parts[0] != "" {
		street = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		city = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		postcode = parts[2]
	}
	return street, city, postcode
}

func postalAddress(full string) PostalAddress {
	street, _, _ := SplitPostalAddress(full)
	return PostalAddress{
		StreetName:       street,
		CityName:         "See AddressLine",
		PostalZone:       "See AddressLine",
		CountrySubentity: "New South Wales",
		AddressLine:      full,
		Country:          "Australia",
	}
}

// BuildDespatchRequest maps an order snapshot onto the despatch API payload.
// The delivery party is addressed by the order's delivery address, the
// supplier by the seller's own.
func BuildDespatchRequest(snap entities.OrderSnapshot) DespatchRequest {
	return DespatchRequest{
		OrderID:        fmt.Sprintf("%d", snap.ID),
		OrderIssueDate: isoDate(snap.OrderDate),
		SalesOrderID:   fmt.Sprintf("SO-%d", snap.ID),
		DeliveryCustomerParty: DeliveryCustomerParty{
			Party: Party{
				PartyIdentification: snap.Buyer.TaxID,
				PostalAddress:       postalAddress(snap.DeliveryAddress),
				PartyLegalEntity:    PartyLegalEntity{RegistrationName: snap.Buyer.Name},
			},
			DeliveryContact: DeliveryContact{
				Name:           snap.Buyer.Name,
				Telephone:      snap.Buyer.Phone,
				ElectronicMail: snap.Buyer.Email,
			},
		},
		DespatchSupplierParty: DespatchSupplierParty{
			Party: Party{
				PartyIdentification: snap.Seller.TaxID,
				PostalAddress:       postalAddress(snap.Seller.Address),
				PartyLegalEntity:    PartyLegalEntity{RegistrationName: snap.Seller.Name},
			},
		},
		OrderLine: DespatchOrderLine{
			Item: DespatchItem{Name: snap.Product.Description},
		},
	}
}
