package helpers

import "time"

// Request/Response DTOs
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
}

type CreateLotRequest struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname"`
	UserID  string `json:"user_id" binding:"required"`
}

type CreateAuctionRequest struct {
	LotID     string     `json:"lot_id" binding:"required"`
	UserID    string     `json:"user_id" binding:"required"`
	StartTime *time.Time `json:"start_time"`
	StopTime  *time.Time `json:"stop_time"`
}

type UpdateAuctionRequest struct {
	UserID    string     `json:"user_id" binding:"required"`
	StartTime *time.Time `json:"start_time"`
	StopTime  *time.Time `json:"stop_time"`
}

type PlaceBidRequest struct {
	AuctionID string     `json:"auction_id" binding:"required"`
	UserID    string     `json:"user_id" binding:"required"`
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Until     *time.Time `json:"until"`
}

type CreatePaymentRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type AuctionResponse struct {
	AuctionID string  `json:"auction_id"`
	LotID     string  `json:"lot_id"`
	State     string  `json:"state"`
	StartTime *string `json:"start_time,omitempty"`
	StopTime  *string `json:"stop_time,omitempty"`
	CreatedBy string  `json:"created_by"`
	CreatedAt string  `json:"created_at"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	Amount    float64 `json:"amount"`
	State     string  `json:"state"`
	Until     *string `json:"until,omitempty"`
	CreatedBy string  `json:"created_by"`
	CreatedAt string  `json:"created_at"`
}

type PaymentResponse struct {
	PaymentID string  `json:"payment_id"`
	AuctionID string  `json:"auction_id"`
	Amount    float64 `json:"amount"`
	Link      string  `json:"link"`
	State     string  `json:"state"`
	CreatedAt string  `json:"created_at"`
}
