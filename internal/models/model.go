package models

import "time"

// AuctionState is the lifecycle state of an auction.
// Allowed transitions: CREATED -> ONGOING -> CLOSED, and
// CREATED|ONGOING -> CANCELLED. CLOSED and CANCELLED are terminal.
type AuctionState string

const (
	AuctionCreated   AuctionState = "CREATED"
	AuctionOngoing   AuctionState = "ONGOING"
	AuctionClosed    AuctionState = "CLOSED"
	AuctionCancelled AuctionState = "CANCELLED"
)

// BidState is the lifecycle state of a bid. Every state except CREATED is
// terminal: ACCEPTED (user wins), REJECTED (a sibling bid won),
// CANCELLED (bidder withdrew), OUTDATED (expiry elapsed before a decision).
type BidState string

const (
	BidCreated   BidState = "CREATED"
	BidAccepted  BidState = "ACCEPTED"
	BidRejected  BidState = "REJECTED"
	BidCancelled BidState = "CANCELLED"
	BidOutdated  BidState = "OUTDATED"
)

// PaymentState is the lifecycle state of a payment: CREATED -> DONE|CANCELLED.
type PaymentState string

const (
	PaymentCreated   PaymentState = "CREATED"
	PaymentDone      PaymentState = "DONE"
	PaymentCancelled PaymentState = "CANCELLED"
)

// User represents a resolved caller identity. Authentication happens upstream;
// lifecycle operations only look users up by id.
type User struct {
	UserID   string `json:"user_id" db:"id"`
	Username string `json:"username" db:"username"`
}

// Lot is the item being auctioned. A lot may be referenced by any number of
// auctions and cannot be deleted while at least one auction references it.
type Lot struct {
	LotID      string    `json:"lot_id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Surname    string    `json:"surname" db:"surname"`
	CreatedBy  string    `json:"created_by" db:"created_by"`
	ModifiedBy string    `json:"modified_by" db:"modified_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Auction is a timed bidding process for exactly one lot. StartTime and
// StopTime are optional; whenever both are set, StartTime must precede
// StopTime. An elapsed StopTime blocks any transition that would (re)activate
// the auction.
type Auction struct {
	AuctionID  string       `json:"auction_id" db:"id"`
	LotID      string       `json:"lot_id" db:"lot_id"`
	State      AuctionState `json:"state" db:"state"`
	StartTime  *time.Time   `json:"start_time,omitempty" db:"start_time"`
	StopTime   *time.Time   `json:"stop_time,omitempty" db:"stop_time"`
	CreatedBy  string       `json:"created_by" db:"created_by"`
	ModifiedBy string       `json:"modified_by" db:"modified_by"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}

// Bid is an offer against an ongoing auction. Until is an optional expiry:
// once it elapses the bid can no longer be accepted or cancelled, and the
// outdate sweep will eventually mark it OUTDATED.
type Bid struct {
	BidID      string     `json:"bid_id" db:"id"`
	AuctionID  string     `json:"auction_id" db:"auction_id"`
	Amount     float64    `json:"amount" db:"amount"`
	Until      *time.Time `json:"until,omitempty" db:"until_time"`
	State      BidState   `json:"state" db:"state"`
	CreatedBy  string     `json:"created_by" db:"created_by"`
	ModifiedBy string     `json:"modified_by" db:"modified_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// Payment is a monetary settlement tied to an auction's outcome. Link is the
// externally issued payment link; it is requested from the gateway before the
// record is persisted, so a stored payment always carries one.
type Payment struct {
	PaymentID  string       `json:"payment_id" db:"id"`
	AuctionID  string       `json:"auction_id" db:"auction_id"`
	Amount     float64      `json:"amount" db:"amount"`
	Link       string       `json:"link" db:"link"`
	State      PaymentState `json:"state" db:"state"`
	CreatedBy  string       `json:"created_by" db:"created_by"`
	ModifiedBy string       `json:"modified_by" db:"modified_by"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}
