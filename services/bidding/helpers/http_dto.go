package helpers

import "github.com/shopspring/decimal"

// Request/Response DTOs
type PlaceBidRequest struct {
	UserID string          `json:"user_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type SetAutoBidRequest struct {
	UserID   string          `json:"user_id" binding:"required"`
	MaxLimit decimal.Decimal `json:"max_limit" binding:"required"`
}

type EditAutoBidRequest struct {
	UserID      string          `json:"user_id" binding:"required"`
	NewMaxLimit decimal.Decimal `json:"new_max_limit" binding:"required"`
}

type AutoBidActionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type AuctionResponse struct {
	AuctionID     string `json:"auction_id"`
	SellerID      string `json:"seller_id"`
	Title         string `json:"title"`
	StartingPrice string `json:"starting_price"`
	MinIncrement  string `json:"min_increment"`
	CurrentPrice  string `json:"current_price"`
	CurrentWinner string `json:"current_winner"`
	Status        string `json:"status"`
	TotalBids     int    `json:"total_bids"`
}

type AutoBidResponse struct {
	AutoBidID string `json:"autobid_id"`
	AuctionID string `json:"auction_id"`
	UserID    string `json:"user_id"`
	MaxLimit  string `json:"max_limit"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
