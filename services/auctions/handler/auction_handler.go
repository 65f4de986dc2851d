package handler

import (
	"net/http"
	"time"

	auction "auction-house/internal/auctionService"
	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(lotID, actingUserID string, startTime, stopTime *time.Time) (model.Auction, error)
	UpdateDetails(auctionID string, patch auction.AuctionPatch, actingUserID string) (model.Auction, error)
	StartAuction(auctionID string) (model.Auction, error)
	CancelAuction(auctionID string) error
	DeleteAuction(auctionID string) error
	GetAuctionByID(auctionID string) (model.Auction, error)
	GetAllAuctions() ([]model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

func auctionToResponse(a model.Auction) helpers.AuctionResponse {
	return helpers.AuctionResponse{
		AuctionID: a.AuctionID,
		LotID:     a.LotID,
		State:     string(a.State),
		StartTime: helpers.FormatTime(a.StartTime),
		StopTime:  helpers.FormatTime(a.StopTime),
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.service.CreateAuction(req.LotID, req.UserID, req.StartTime, req.StopTime)
	if err != nil {
		helpers.RespondWithError(c, "CreateAuctionHandler", err, map[string]any{"lot_id": req.LotID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auctionToResponse(a), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.AuctionID,
		"lot_id":     a.LotID,
	})
}

// UpdateAuctionHandler handles PATCH /auctions/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	patch := auction.AuctionPatch{StartTime: req.StartTime, StopTime: req.StopTime}
	a, err := h.service.UpdateDetails(auctionID, patch, req.UserID)
	if err != nil {
		helpers.RespondWithError(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auctionToResponse(a), "auction updated successfully")
}

// StartAuctionHandler handles POST /auctions/:auction_id/start
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.StartAuction(auctionID)
	if err != nil {
		helpers.RespondWithError(c, "StartAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auctionToResponse(a), "auction started successfully")
	helpers.LogSuccess("StartAuctionHandler", "auction started successfully", map[string]any{"auction_id": auctionID})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	if err := h.service.CancelAuction(auctionID); err != nil {
		helpers.RespondWithError(c, "CancelAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{"auction_id": auctionID})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	if err := h.service.DeleteAuction(auctionID); err != nil {
		helpers.RespondWithError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuctionByID(auctionID)
	if err != nil {
		helpers.RespondWithError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auctionToResponse(a), "auction retrieved successfully")
}

// GetAllAuctionsHandler handles GET /auctions
func (h *AuctionHandler) GetAllAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.GetAllAuctions()
	if err != nil {
		helpers.RespondWithError(c, "GetAllAuctionsHandler", err, nil)
		return
	}

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, auctionToResponse(a))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
}
