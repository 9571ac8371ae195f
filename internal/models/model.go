package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auction lifecycle statuses. The bidding core only mutates LIVE auctions;
// the upcoming/live/ended sweeper lives outside this service.
const (
	StatusUpcoming  = "UPCOMING"
	StatusLive      = "LIVE"
	StatusEnded     = "ENDED"
	StatusCancelled = "CANCELLED"
)

// Audit event types recorded in the auction event log.
const (
	EventBidPlaced        = "BID_PLACED"
	EventAutoBidTriggered = "AUTO_BID_TRIGGERED"
	EventAutoBidSet       = "AUTO_BID_SET"
	EventAutoBidEdited    = "AUTO_BID_EDITED"
	EventAutoBidActivated = "AUTO_BID_ACTIVATED"
	EventAutoBidCancelled = "AUTO_BID_CANCELLED"
	EventAuctionEnded     = "AUCTION_ENDED"
)

// User represents a participant in the marketplace
type User struct {
	UserID   string `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username string `json:"username"`
}

// Auction is the ledger row for a single listing. CurrentPrice and
// CurrentWinner are only ever mutated through a versioned commit; Version is
// the optimistic-concurrency guard.
type Auction struct {
	AuctionID     string          `json:"auction_id" gorm:"primaryKey;column:auction_id"`
	SellerID      string          `json:"seller_id" gorm:"index"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price" gorm:"type:numeric"`
	MinIncrement  decimal.Decimal `json:"min_increment" gorm:"type:numeric"`
	BuyNowPrice   decimal.Decimal `json:"buy_now_price" gorm:"type:numeric"`
	CurrentPrice  decimal.Decimal `json:"current_price" gorm:"type:numeric"`
	CurrentWinner string          `json:"current_winner"`
	Status        string          `json:"status" gorm:"index"`
	TotalBids     int             `json:"total_bids"`
	AutoBidders   []string        `json:"auto_bidders" gorm:"serializer:json"`
	Version       int64           `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasBuyNow reports whether the listing carries a buy-now price.
func (a Auction) HasBuyNow() bool {
	return a.BuyNowPrice.IsPositive()
}

// ManualBid is a user's bid of record on an auction. There is at most one row
// per (auction, user); a re-bid replaces the amount.
type ManualBid struct {
	BidID     string          `json:"bid_id" gorm:"primaryKey;column:bid_id"`
	AuctionID string          `json:"auction_id" gorm:"uniqueIndex:idx_bid_auction_user"`
	UserID    string          `json:"user_id" gorm:"uniqueIndex:idx_bid_auction_user"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AutoBid is a standing authorization to bid on the user's behalf up to
// MaxLimit. CreatedAt is the arm time and breaks ties between proxies that
// cap out at the same amount.
type AutoBid struct {
	AutoBidID string          `json:"autobid_id" gorm:"primaryKey;column:autobid_id"`
	AuctionID string          `json:"auction_id" gorm:"uniqueIndex:idx_autobid_auction_user"`
	UserID    string          `json:"user_id" gorm:"uniqueIndex:idx_autobid_auction_user"`
	MaxLimit  decimal.Decimal `json:"max_limit" gorm:"type:numeric"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AuctionEvent is one append-only audit log entry.
type AuctionEvent struct {
	EventID   string          `json:"event_id" gorm:"primaryKey;column:event_id"`
	AuctionID string          `json:"auction_id" gorm:"index"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric"`
	Details   map[string]any  `json:"details" gorm:"serializer:json"`
	CreatedAt time.Time       `json:"created_at"`
}
