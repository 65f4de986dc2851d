package handler

import (
	"net/http"
	"time"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bid_handler.go -destination=mock_bid_handler.go -package=handler

type BidServiceInterface interface {
	CreateBid(auctionID, actingUserID string, amount float64, until *time.Time) (model.Bid, error)
	CancelBid(bidID string) error
	AcceptBid(bidID string) (model.Bid, error)
	GetBidByID(bidID string) (model.Bid, error)
	GetAllBids() ([]model.Bid, error)
	GetBidsByAuctionID(auctionID string) ([]model.Bid, error)
}

type BidHandler struct {
	service BidServiceInterface
}

func NewBidHandler(service BidServiceInterface) *BidHandler {
	return &BidHandler{service: service}
}

func bidToResponse(b model.Bid) helpers.BidResponse {
	return helpers.BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		Amount:    b.Amount,
		State:     string(b.State),
		Until:     helpers.FormatTime(b.Until),
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// PlaceBidHandler handles POST /bids
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	b, err := h.service.CreateBid(req.AuctionID, req.UserID, req.Amount, req.Until)
	if err != nil {
		helpers.RespondWithError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": req.AuctionID,
			"user_id":    req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bidToResponse(b), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     b.BidID,
		"auction_id": b.AuctionID,
		"amount":     b.Amount,
	})
}

// AcceptBidHandler handles POST /bids/:bid_id/accept
func (h *BidHandler) AcceptBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	b, err := h.service.AcceptBid(bidID)
	if err != nil {
		helpers.RespondWithError(c, "AcceptBidHandler", err, map[string]any{"bid_id": bidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidToResponse(b), "bid accepted successfully")
	helpers.LogSuccess("AcceptBidHandler", "bid accepted successfully", map[string]any{
		"bid_id":     b.BidID,
		"auction_id": b.AuctionID,
	})
}

// CancelBidHandler handles POST /bids/:bid_id/cancel
func (h *BidHandler) CancelBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	if err := h.service.CancelBid(bidID); err != nil {
		helpers.RespondWithError(c, "CancelBidHandler", err, map[string]any{"bid_id": bidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "bid cancelled successfully")
}

// GetBidHandler handles GET /bids/:bid_id
func (h *BidHandler) GetBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	b, err := h.service.GetBidByID(bidID)
	if err != nil {
		helpers.RespondWithError(c, "GetBidHandler", err, map[string]any{"bid_id": bidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidToResponse(b), "bid retrieved successfully")
}

// GetAllBidsHandler handles GET /bids
func (h *BidHandler) GetAllBidsHandler(c *gin.Context) {
	bids, err := h.service.GetAllBids()
	if err != nil {
		helpers.RespondWithError(c, "GetAllBidsHandler", err, nil)
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, bidToResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *BidHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBidsByAuctionID(auctionID)
	if err != nil {
		helpers.RespondWithError(c, "GetBidsByAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, bidToResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}
