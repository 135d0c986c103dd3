package entities

import "errors"

// Product is a v2 catalog entry owned by a seller. SellerID is zero for rows
// from the legacy shared catalog.
type Product struct {
	ID          int64
	Name        string
	Price       int
	TaxRate     string
	Description string
	SellerID    int64
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductNotOwned = errors.New("product does not belong to the given seller")
)
