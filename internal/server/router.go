package server

import (
	handler "auction-house/services/auctions/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	lotService handler.LotServiceInterface,
	userService handler.UserServiceInterface,
	auctionService handler.AuctionServiceInterface,
	bidService handler.BidServiceInterface,
	paymentService handler.PaymentServiceInterface,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	lotHandler := handler.NewLotHandler(lotService, userService)
	auctionHandler := handler.NewAuctionHandler(auctionService)
	bidHandler := handler.NewBidHandler(bidService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	users := router.Group("/users")
	{
		users.POST("", lotHandler.RegisterUserHandler)
		users.GET("/:user_id", lotHandler.GetUserHandler)
	}

	lots := router.Group("/lots")
	{
		lots.POST("", lotHandler.CreateLotHandler)
		lots.GET("", lotHandler.GetAllLotsHandler)
		lots.GET("/:lot_id", lotHandler.GetLotHandler)
		lots.DELETE("/:lot_id", lotHandler.DeleteLotHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.GetAllAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PATCH("/:auction_id", auctionHandler.UpdateAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.DeleteAuctionHandler)
		auctions.POST("/:auction_id/start", auctionHandler.StartAuctionHandler)
		auctions.POST("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
		auctions.GET("/:auction_id/bids", bidHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/payments", paymentHandler.GetPaymentsByAuctionHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", bidHandler.PlaceBidHandler)
		bids.GET("", bidHandler.GetAllBidsHandler)
		bids.GET("/:bid_id", bidHandler.GetBidHandler)
		bids.POST("/:bid_id/accept", bidHandler.AcceptBidHandler)
		bids.POST("/:bid_id/cancel", bidHandler.CancelBidHandler)
	}

	payments := router.Group("/payments")
	{
		payments.POST("", paymentHandler.CreatePaymentHandler)
		payments.GET("/:payment_id", paymentHandler.GetPaymentHandler)
		payments.POST("/:payment_id/cancel", paymentHandler.CancelPaymentHandler)
	}

	return router
}
