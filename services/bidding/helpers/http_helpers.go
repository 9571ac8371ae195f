package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrAutoBidNotFound):
		return http.StatusNotFound, "auto-bid not found"
	case errors.Is(err, biddingerrors.ErrBidNotFound):
		return http.StatusNotFound, "no bid found for user"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrLimitTooLow):
		return http.StatusBadRequest, "auto-bid limit too low"
	case errors.Is(err, biddingerrors.ErrAuctionNotLive):
		return http.StatusConflict, "auction is not live"
	case errors.Is(err, biddingerrors.ErrSellerBid):
		return http.StatusBadRequest, "seller cannot bid on own auction"
	case errors.Is(err, biddingerrors.ErrActiveAutoBid):
		return http.StatusBadRequest, "deactivate your auto-bid before bidding manually"
	case errors.Is(err, biddingerrors.ErrDuplicateAutoBid):
		return http.StatusBadRequest, "auto-bid already set for this auction"
	case errors.Is(err, biddingerrors.ErrRetriesExhausted):
		return http.StatusServiceUnavailable, "auction is busy, please retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// NeedsCurrentPrice reports whether a rejection should carry the price to
// beat, so the caller can decide whether to resubmit higher.
func NeedsCurrentPrice(err error) bool {
	return errors.Is(err, biddingerrors.ErrBidTooLow) || errors.Is(err, biddingerrors.ErrLimitTooLow)
}

// ToAuctionResponse maps a ledger row to its response DTO.
func ToAuctionResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		AuctionID:     a.AuctionID,
		SellerID:      a.SellerID,
		Title:         a.Title,
		StartingPrice: a.StartingPrice.String(),
		MinIncrement:  a.MinIncrement.String(),
		CurrentPrice:  a.CurrentPrice.String(),
		CurrentWinner: a.CurrentWinner,
		Status:        a.Status,
		TotalBids:     a.TotalBids,
	}
}

// ToAutoBidResponse maps a registry record to its response DTO.
func ToAutoBidResponse(ab model.AutoBid) AutoBidResponse {
	return AutoBidResponse{
		AutoBidID: ab.AutoBidID,
		AuctionID: ab.AuctionID,
		UserID:    ab.UserID,
		MaxLimit:  ab.MaxLimit.String(),
		IsActive:  ab.IsActive,
		CreatedAt: ab.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
