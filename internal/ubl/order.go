// Package ubl holds the pure document transforms: an order snapshot goes in,
// a UBL XML or despatch JSON payload comes out. Nothing here touches the
// database or the network.
package ubl

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/notuna/order-service/internal/entities"
)

type orderParty struct {
	Name    string `xml:"Name"`
	Address string `xml:"Address"`
	Phone   string `xml:"Phone"`
	Email   string `xml:"Email"`
	Tax     string `xml:"Tax"`
}

type orderProduct struct {
	ID          int64  `xml:"Id"`
	Description string `xml:"Description"`
	Tax         string `xml:"Tax"`
}

type orderDetails struct {
	Buyer           orderParty   `xml:"Buyer"`
	Product         orderProduct `xml:"Product"`
	OrderID         int64        `xml:"OrderId"`
	OrderDate       string       `xml:"OrderDate"`
	Price           int          `xml:"Price"`
	PaymentDetails  string       `xml:"PaymentDetails"`
	Quantity        int          `xml:"Quantity"`
	DeliveryAddress string       `xml:"DeliveryAddress"`
	ContractData    string       `xml:"ContractData"`
	Response        string       `xml:"Response"`
	Details         string       `xml:"Details"`
	OrderStatus     string       `xml:"OrderStatus"`
	Seller          orderParty   `xml:"Seller"`
}

type orderDocument struct {
	XMLName xml.Name     `xml:"Invoice"`
	Details orderDetails `xml:"OrderDetails"`
}

// isoDate renders the order date as yyyy-mm-dd, empty for the zero time.
func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// BuildOrderDocument renders the UBL registration document returned by the
// order-register endpoint.
func BuildOrderDocument(snap entities.OrderSnapshot) ([]byte, error) {
	doc := orderDocument{
		Details: orderDetails{
			Buyer: orderParty{
				Name:    snap.Buyer.Name,
				Address: snap.Buyer.Address,
				Phone:   snap.Buyer.Phone,
				Email:   snap.Buyer.Email,
				Tax:     snap.Buyer.TaxID,
			},
			Product: orderProduct{
				ID:          snap.Product.ID,
				Description: snap.Product.Description,
				Tax:         snap.Product.TaxRate,
			},
			OrderID:         snap.ID,
			OrderDate:       isoDate(snap.OrderDate),
			Price:           snap.Price,
			PaymentDetails:  snap.PaymentDetails,
			Quantity:        snap.Quantity,
			DeliveryAddress: snap.DeliveryAddress,
			ContractData:    snap.ContractData,
			Response:        snap.Response,
			Details:         snap.Details,
			OrderStatus:     string(snap.Status),
			Seller: orderParty{
				Name:    snap.Seller.Name,
				Address: snap.Seller.Address,
				Phone:   snap.Seller.Phone,
				Email:   snap.Seller.Email,
				Tax:     snap.Seller.TaxID,
			},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
