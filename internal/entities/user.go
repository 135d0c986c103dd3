package entities

import "errors"

// User is a login identity. A user may act as a buyer, a seller, or both;
// the links are zero until the corresponding party is created.
type User struct {
	ID           int64
	NameFirst    string
	NameLast     string
	Email        string
	PasswordHash string
	BuyerID      int64
	SellerID     int64
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoPartyLink        = errors.New("user has no linked party id")

	// ErrInvalidInput marks rejected registration input; the wrapping error
	// carries the user-facing reason.
	ErrInvalidInput = errors.New("invalid input")
)
