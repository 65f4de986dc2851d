package handler

import (
	"net/http"
	"time"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type PaymentServiceInterface interface {
	CreatePayment(auctionID, actingUserID string, amount float64) (model.Payment, error)
	CancelPayment(paymentID string) error
	GetPaymentByID(paymentID string) (model.Payment, error)
	GetPaymentsByAuctionID(auctionID string) ([]model.Payment, error)
}

type PaymentHandler struct {
	service PaymentServiceInterface
}

func NewPaymentHandler(service PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func paymentToResponse(p model.Payment) helpers.PaymentResponse {
	return helpers.PaymentResponse{
		PaymentID: p.PaymentID,
		AuctionID: p.AuctionID,
		Amount:    p.Amount,
		Link:      p.Link,
		State:     string(p.State),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreatePaymentHandler handles POST /payments
func (h *PaymentHandler) CreatePaymentHandler(c *gin.Context) {
	var req helpers.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreatePaymentHandler", err)
		return
	}

	p, err := h.service.CreatePayment(req.AuctionID, req.UserID, req.Amount)
	if err != nil {
		helpers.RespondWithError(c, "CreatePaymentHandler", err, map[string]any{"auction_id": req.AuctionID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, paymentToResponse(p), "payment created successfully")
	helpers.LogSuccess("CreatePaymentHandler", "payment created successfully", map[string]any{
		"payment_id": p.PaymentID,
		"auction_id": p.AuctionID,
		"amount":     p.Amount,
	})
}

// CancelPaymentHandler handles POST /payments/:payment_id/cancel
func (h *PaymentHandler) CancelPaymentHandler(c *gin.Context) {
	paymentID := c.Param("payment_id")
	if err := h.service.CancelPayment(paymentID); err != nil {
		helpers.RespondWithError(c, "CancelPaymentHandler", err, map[string]any{"payment_id": paymentID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "payment cancelled successfully")
}

// GetPaymentHandler handles GET /payments/:payment_id
func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	paymentID := c.Param("payment_id")
	p, err := h.service.GetPaymentByID(paymentID)
	if err != nil {
		helpers.RespondWithError(c, "GetPaymentHandler", err, map[string]any{"payment_id": paymentID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, paymentToResponse(p), "payment retrieved successfully")
}

// GetPaymentsByAuctionHandler handles GET /auctions/:auction_id/payments
func (h *PaymentHandler) GetPaymentsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	payments, err := h.service.GetPaymentsByAuctionID(auctionID)
	if err != nil {
		helpers.RespondWithError(c, "GetPaymentsByAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentToResponse(p))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "payments retrieved successfully")
}
