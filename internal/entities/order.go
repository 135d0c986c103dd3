package entities

import (
	"errors"
	"time"
)

type Order struct {
	ID              int64
	OrderDate       time.Time
	Price           int
	PaymentDetails  string
	Quantity        int
	DeliveryAddress string
	ContractData    string
	// Response accumulates seller responses, each prefixed with an
	// RFC 3339 timestamp on its own line.
	Response string
	Details  string
	Status   Status

	BuyerID   int64
	SellerID  int64
	ProductID int64

	// Write-once document references, set only while the order is
	// ORDER_REGISTERED.
	InvoiceID  string
	DespatchID string
}

// OrderSnapshot is an order joined with its parties and product, the input of
// every document transform.
type OrderSnapshot struct {
	Order
	Buyer   Buyer
	Seller  Seller
	Product Product
}

// OrderSummary is the row shape of the listing endpoints.
type OrderSummary struct {
	OrderID     int64
	OrderDate   time.Time
	Price       int
	Quantity    int
	Status      Status
	BuyerName   string
	SellerName  string
	ProductName string
}

// StatsRow is the minimal projection the stats aggregator works on.
type StatsRow struct {
	Status    Status
	OrderDate time.Time
	Price     int
}

// DocumentKind distinguishes the two document references an order can carry.
type DocumentKind string

const (
	DocumentInvoice  DocumentKind = "invoice"
	DocumentDespatch DocumentKind = "despatch"
)

// DocumentRef is a listing row for saved invoices or despatch advices.
type DocumentRef struct {
	OrderID     int64
	OrderDate   time.Time
	PartyName   string
	Status      Status
	ProductName string
	Price       int
	DocumentID  string
}

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrStatusConflict = errors.New("order is not in a valid state for this action")
	ErrAlreadySaved   = errors.New("document already saved")
	ErrNotOwner       = errors.New("order is not owned by this seller")
	ErrMissingFields  = errors.New("missing required fields")
)
