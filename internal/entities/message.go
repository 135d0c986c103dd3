package entities

import (
	"errors"
	"time"
)

type Message struct {
	ID            int64
	SenderEmail   string
	ReceiverEmail string
	Content       string
	Timestamp     time.Time
}

// Chat is a distinct sender/receiver pair a user has exchanged messages with.
type Chat struct {
	SenderEmail   string
	ReceiverEmail string
}

var ErrMessageNotFound = errors.New("message not found")
