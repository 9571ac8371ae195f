package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrAutoBidNotFound  = errors.New("auto-bid not found")
	ErrBidNotFound      = errors.New("no bid found for user")
	ErrDuplicateAutoBid = errors.New("auto-bid already set for this auction")
	ErrVersionConflict  = errors.New("auction state changed concurrently")
)

// business logic errors
var (
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrLimitTooLow      = errors.New("auto-bid limit too low")
	ErrAuctionNotLive   = errors.New("auction is not live")
	ErrSellerBid        = errors.New("seller cannot bid on own auction")
	ErrActiveAutoBid    = errors.New("active auto-bid already covers this user")
	ErrRetriesExhausted = errors.New("resolution retries exhausted")
	ErrIndexCorrupt     = errors.New("auto-bidder index inconsistent with registry")
)
