package entities

import "errors"

// PartyDetails is the company identity tuple shared by buyers and sellers.
// Two parties with the same full tuple are the same row (insert-or-reuse).
type PartyDetails struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxID   string
}

// PartyRole selects which side of an order a query is about.
type PartyRole string

const (
	RoleBuyer  PartyRole = "buyer"
	RoleSeller PartyRole = "seller"
)

type Buyer struct {
	ID int64
	PartyDetails
}

type Seller struct {
	ID int64
	PartyDetails
}

var (
	ErrBuyerNotFound  = errors.New("buyer not found")
	ErrSellerNotFound = errors.New("seller not found")
)
