package handler

import (
	"context"
	"fmt"
	"net/http"

	model "auction-house/internal/models"
	"auction-house/services/bidding/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BiddingServiceInterface interface {
	PlaceManualBid(ctx context.Context, auctionID, userID string, amount decimal.Decimal) (model.Auction, error)
	SetAutoBid(ctx context.Context, auctionID, userID string, maxLimit decimal.Decimal) (model.AutoBid, model.Auction, error)
	EditAutoBid(ctx context.Context, auctionID, userID string, newLimit decimal.Decimal) (model.AutoBid, model.Auction, error)
	ActivateAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, model.Auction, error)
	DeactivateAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.ManualBid, error)
	GetAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, error)
	GetAuctionEvents(ctx context.Context, auctionID string) ([]model.AuctionEvent, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// respondError translates a service error to HTTP, attaching the price to
// beat on bid/limit rejections so callers can resubmit higher.
func (h *BiddingHandler) respondError(c *gin.Context, handlerName, auctionID string, err error) {
	status, message := helpers.MapErrorToHTTP(err)
	wrapped := fmt.Errorf("%s: %w", message, err)

	if helpers.NeedsCurrentPrice(err) {
		if a, aerr := h.service.GetAuction(c.Request.Context(), auctionID); aerr == nil {
			utils.JSONErrorWithPrice(c, status, wrapped, message, a.CurrentPrice.String())
			utils.Warn(handlerName+": request rejected", map[string]any{
				"auction_id": auctionID,
				"error":      err.Error(),
			})
			return
		}
	}

	utils.JSONError(c, status, wrapped, message)
	utils.Warn(handlerName+": request failed", map[string]any{
		"auction_id": auctionID,
		"error":      err.Error(),
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auction, err := h.service.PlaceManualBid(c.Request.Context(), auctionID, req.UserID, req.Amount)
	if err != nil {
		h.respondError(c, "PlaceBidHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(auction), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"auction_id":     auctionID,
		"user_id":        req.UserID,
		"amount":         req.Amount.String(),
		"current_price":  auction.CurrentPrice.String(),
		"current_winner": auction.CurrentWinner,
	})
}

// SetAutoBidHandler handles POST /auctions/:auction_id/autobids
func (h *BiddingHandler) SetAutoBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.SetAutoBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetAutoBidHandler", err)
		return
	}

	ab, auction, err := h.service.SetAutoBid(c.Request.Context(), auctionID, req.UserID, req.MaxLimit)
	if err != nil {
		h.respondError(c, "SetAutoBidHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{
		"autobid": helpers.ToAutoBidResponse(ab),
		"auction": helpers.ToAuctionResponse(auction),
	}, "auto-bid set successfully")
	helpers.LogSuccess("SetAutoBidHandler", "auto-bid set successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
		"max_limit":  req.MaxLimit.String(),
	})
}

// EditAutoBidHandler handles PUT /auctions/:auction_id/autobids
func (h *BiddingHandler) EditAutoBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.EditAutoBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EditAutoBidHandler", err)
		return
	}

	ab, auction, err := h.service.EditAutoBid(c.Request.Context(), auctionID, req.UserID, req.NewMaxLimit)
	if err != nil {
		h.respondError(c, "EditAutoBidHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{
		"autobid": helpers.ToAutoBidResponse(ab),
		"auction": helpers.ToAuctionResponse(auction),
	}, "auto-bid limit updated successfully")
	helpers.LogSuccess("EditAutoBidHandler", "auto-bid limit updated successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
		"new_limit":  req.NewMaxLimit.String(),
	})
}

// ActivateAutoBidHandler handles POST /auctions/:auction_id/autobids/activate
func (h *BiddingHandler) ActivateAutoBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.AutoBidActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ActivateAutoBidHandler", err)
		return
	}

	ab, auction, err := h.service.ActivateAutoBid(c.Request.Context(), auctionID, req.UserID)
	if err != nil {
		h.respondError(c, "ActivateAutoBidHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{
		"autobid": helpers.ToAutoBidResponse(ab),
		"auction": helpers.ToAuctionResponse(auction),
	}, "auto-bid activated successfully")
	helpers.LogSuccess("ActivateAutoBidHandler", "auto-bid activated successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
	})
}

// DeactivateAutoBidHandler handles POST /auctions/:auction_id/autobids/deactivate
func (h *BiddingHandler) DeactivateAutoBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.AutoBidActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "DeactivateAutoBidHandler", err)
		return
	}

	ab, err := h.service.DeactivateAutoBid(c.Request.Context(), auctionID, req.UserID)
	if err != nil {
		h.respondError(c, "DeactivateAutoBidHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAutoBidResponse(ab), "auto-bid deactivated successfully")
	helpers.LogSuccess("DeactivateAutoBidHandler", "auto-bid deactivated successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		h.respondError(c, "GetAuctionHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(auction), "auction retrieved successfully")
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil {
		h.respondError(c, "GetBidsHandler", auctionID, err)
		return
	}

	if bids == nil {
		bids = []model.ManualBid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// GetAutoBidHandler handles GET /auctions/:auction_id/autobids/:user_id
func (h *BiddingHandler) GetAutoBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	userID := c.Param("user_id")

	ab, err := h.service.GetAutoBid(c.Request.Context(), auctionID, userID)
	if err != nil {
		h.respondError(c, "GetAutoBidHandler", auctionID, err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAutoBidResponse(ab), "auto-bid retrieved successfully")
}

// GetEventsHandler handles GET /auctions/:auction_id/events
func (h *BiddingHandler) GetEventsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	events, err := h.service.GetAuctionEvents(c.Request.Context(), auctionID)
	if err != nil {
		h.respondError(c, "GetEventsHandler", auctionID, err)
		return
	}

	if events == nil {
		events = []model.AuctionEvent{}
	}

	utils.JSONResponse(c, http.StatusOK, events, "events retrieved successfully")
}
