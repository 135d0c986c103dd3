package entities

// Status is the closed order lifecycle vocabulary. Every transition goes
// through CanTransition; nothing else writes status strings.
type Status string

const (
	StatusPendingSellerReview Status = "PENDING_SELLER_REVIEW"
	StatusPendingBuyerReview  Status = "PENDING_BUYER_REVIEW"
	StatusSellerAccepted      Status = "SELLER_ORDER_ACCEPTED"
	StatusSellerRejected      Status = "SELLER_ORDER_REJECTED"
	StatusAccepted            Status = "ORDER_ACCEPTED"
	StatusRegistered          Status = "ORDER_REGISTERED"
	StatusCancelled           Status = "ORDER_CANCELLED"
	StatusFulfilled           Status = "ORDER_FULFILLED"
)

// AllStatuses lists the full vocabulary in declaration order. Stats buckets
// iterate over this so that every status appears in responses even when zero.
var AllStatuses = []Status{
	StatusPendingSellerReview,
	StatusPendingBuyerReview,
	StatusRegistered,
	StatusSellerAccepted,
	StatusSellerRejected,
	StatusCancelled,
	StatusAccepted,
	StatusFulfilled,
}

var transitions = map[Status][]Status{
	StatusPendingSellerReview: {StatusSellerAccepted, StatusSellerRejected, StatusPendingBuyerReview, StatusCancelled},
	StatusPendingBuyerReview:  {StatusAccepted, StatusPendingSellerReview, StatusCancelled},
	StatusSellerAccepted:      {StatusRegistered, StatusPendingSellerReview, StatusCancelled},
	StatusSellerRejected:      {StatusPendingSellerReview, StatusCancelled},
	StatusAccepted:            {StatusPendingSellerReview, StatusFulfilled, StatusCancelled},
	StatusRegistered:          {StatusCancelled},
	StatusCancelled:           {StatusPendingSellerReview},
	StatusFulfilled:           {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the edge s -> to is part of the lifecycle.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// SortPriority is the display ordering used by the stats endpoints. It is a
// presentation priority, not a temporal one: fulfilled orders come first,
// rejected last, unknown statuses sink to the bottom.
func (s Status) SortPriority() int {
	switch s {
	case StatusFulfilled:
		return 1
	case StatusCancelled:
		return 2
	case StatusPendingBuyerReview:
		return 3
	case StatusPendingSellerReview:
		return 4
	case StatusAccepted:
		return 5
	case StatusSellerAccepted:
		return 6
	case StatusRegistered:
		return 7
	case StatusSellerRejected:
		return 8
	default:
		return 999
	}
}
