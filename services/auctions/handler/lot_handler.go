package handler

import (
	"net/http"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type LotServiceInterface interface {
	CreateLot(name, surname, actingUserID string) (model.Lot, error)
	DeleteLot(lotID string) error
	GetLotByID(lotID string) (model.Lot, error)
	GetAllLots() ([]model.Lot, error)
}

type UserServiceInterface interface {
	RegisterUser(username string) (model.User, error)
	GetUserByID(userID string) (model.User, error)
}

type LotHandler struct {
	lots  LotServiceInterface
	users UserServiceInterface
}

func NewLotHandler(lots LotServiceInterface, users UserServiceInterface) *LotHandler {
	return &LotHandler{lots: lots, users: users}
}

// CreateLotHandler handles POST /lots
func (h *LotHandler) CreateLotHandler(c *gin.Context) {
	var req helpers.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateLotHandler", err)
		return
	}

	lot, err := h.lots.CreateLot(req.Name, req.Surname, req.UserID)
	if err != nil {
		helpers.RespondWithError(c, "CreateLotHandler", err, map[string]any{"name": req.Name})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, lot, "lot created successfully")
	helpers.LogSuccess("CreateLotHandler", "lot created successfully", map[string]any{"lot_id": lot.LotID})
}

// DeleteLotHandler handles DELETE /lots/:lot_id
func (h *LotHandler) DeleteLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	if err := h.lots.DeleteLot(lotID); err != nil {
		helpers.RespondWithError(c, "DeleteLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "lot deleted")
}

// GetLotHandler handles GET /lots/:lot_id
func (h *LotHandler) GetLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.lots.GetLotByID(lotID)
	if err != nil {
		helpers.RespondWithError(c, "GetLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lot, "lot retrieved successfully")
}

// GetAllLotsHandler handles GET /lots
func (h *LotHandler) GetAllLotsHandler(c *gin.Context) {
	lots, err := h.lots.GetAllLots()
	if err != nil {
		helpers.RespondWithError(c, "GetAllLotsHandler", err, nil)
		return
	}

	if lots == nil {
		lots = []model.Lot{}
	}
	utils.JSONResponse(c, http.StatusOK, lots, "lots retrieved successfully")
}

// RegisterUserHandler handles POST /users
func (h *LotHandler) RegisterUserHandler(c *gin.Context) {
	var req helpers.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterUserHandler", err)
		return
	}

	user, err := h.users.RegisterUser(req.Username)
	if err != nil {
		helpers.RespondWithError(c, "RegisterUserHandler", err, map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "user registered successfully")
}

// GetUserHandler handles GET /users/:user_id
func (h *LotHandler) GetUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		helpers.RespondWithError(c, "GetUserHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "user retrieved successfully")
}
