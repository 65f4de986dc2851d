package auctionerrors

import "errors"

// Not-found errors, one per entity kind. Read paths surface these as-is.
// Mutation paths that hit a missing secondary reference (e.g. the acting user
// while creating a bid) re-wrap them into ErrBusinessFailure instead.
var (
	ErrLotNotFound     = errors.New("lot not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// Business logic errors
var (
	// ErrInvalidParameter means the request is well-formed but violates a
	// lifecycle rule: wrong state, elapsed deadline, ordering violation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBusinessFailure wraps an unexpected failure during a write
	// (storage, gateway, missing secondary reference) after validation passed.
	ErrBusinessFailure = errors.New("business failure")
)

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLotNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAuctionNotFound) ||
		errors.Is(err, ErrBidNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}
