package server

import (
	bidding "auction-house/internal/biddingService"
	handler "auction-house/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.BiddingService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := handler.NewBiddingHandler(biddingService)

	auctions := router.Group("/auctions")
	{
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsHandler)
		auctions.GET("/:auction_id/events", biddingHandler.GetEventsHandler)
		auctions.POST("/:auction_id/bids", biddingHandler.PlaceBidHandler)

		auctions.POST("/:auction_id/autobids", biddingHandler.SetAutoBidHandler)
		auctions.PUT("/:auction_id/autobids", biddingHandler.EditAutoBidHandler)
		auctions.POST("/:auction_id/autobids/activate", biddingHandler.ActivateAutoBidHandler)
		auctions.POST("/:auction_id/autobids/deactivate", biddingHandler.DeactivateAutoBidHandler)
		auctions.GET("/:auction_id/autobids/:user_id", biddingHandler.GetAutoBidHandler)
	}

	return router
}
