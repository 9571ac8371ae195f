package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"
	"auction-house/internal/notify"
	"auction-house/internal/repository"
	"auction-house/utils"

	"github.com/shopspring/decimal"
)

const defaultMaxCommitRetries = 3

// BiddingService resolves manual bids and proxy-bid escalations on live
// auctions. All state changes for one auction run inside a per-auction lock
// and land through a versioned commit, so committed (price, winner) states
// form a total order per auction.
type BiddingService struct {
	db         repository.AuctionDB
	dispatcher *notify.Dispatcher
	locks      Locker
	maxRetries int
}

// Option configures a BiddingService.
type Option func(*BiddingService)

// WithLocker swaps the per-auction serialization backend (e.g. a Redis lock
// for multi-instance deployments).
func WithLocker(l Locker) Option {
	return func(s *BiddingService) { s.locks = l }
}

// WithMaxCommitRetries bounds how many times a conflicted resolution is
// recomputed from a fresh snapshot before giving up.
func WithMaxCommitRetries(n int) Option {
	return func(s *BiddingService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(db repository.AuctionDB, dispatcher *notify.Dispatcher, opts ...Option) *BiddingService {
	s := &BiddingService{
		db:         db,
		dispatcher: dispatcher,
		locks:      NewKeyedMutex(),
		maxRetries: defaultMaxCommitRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceManualBid validates and records a user's bid, then escalates any armed
// proxies it provokes. The manual bid stays the user's bid of record even if
// a proxy immediately outbids it within the same pass.
func (s *BiddingService) PlaceManualBid(ctx context.Context, auctionID, userID string, amount decimal.Decimal) (model.Auction, error) {
	if auctionID == "" || userID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return model.Auction{}, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}

	release, err := s.locks.Acquire(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: acquire lock for auction %s: %w", auctionID, err)
	}
	defer release()

	var res *resolution
	err = s.withRetries(auctionID, func() error {
		a, err := s.readLiveAuction(ctx, auctionID, userID)
		if err != nil {
			return err
		}

		if ab, err := s.db.FindAutoBid(ctx, auctionID, userID); err == nil && ab.IsActive {
			return fmt.Errorf("service: %w - deactivate it to bid manually", biddingerrors.ErrActiveAutoBid)
		} else if err != nil && !errors.Is(err, biddingerrors.ErrAutoBidNotFound) {
			return fmt.Errorf("service: check auto-bid for user %s: %w", userID, err)
		}

		if amount.LessThan(a.StartingPrice) ||
			amount.LessThanOrEqual(a.CurrentPrice) ||
			amount.LessThan(a.CurrentPrice.Add(a.MinIncrement)) {
			return fmt.Errorf("service: %w - price to beat is %s", biddingerrors.ErrBidTooLow, a.CurrentPrice.String())
		}

		autoBids, err := s.loadAutoBids(ctx, a)
		if err != nil {
			return err
		}

		bid := model.ManualBid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			UserID:    userID,
			Amount:    amount,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.db.UpsertManualBid(ctx, bid); err != nil {
			return fmt.Errorf("service: record bid for auction %s by user %s: %w", auctionID, userID, err)
		}

		res = newResolution(a)
		res.lead(userID, amount, model.EventBidPlaced, map[string]any{"method": "manual"})
		res.runAutoBids(autoBids)
		return s.commit(ctx, res)
	})
	if err != nil {
		return model.Auction{}, err
	}

	s.finish(ctx, res)
	return res.auction, nil
}

// SetAutoBid arms a new proxy bid with the given ceiling and resolves any
// escalation it triggers. A second record for the same user is rejected.
func (s *BiddingService) SetAutoBid(ctx context.Context, auctionID, userID string, maxLimit decimal.Decimal) (model.AutoBid, model.Auction, error) {
	if auctionID == "" || userID == "" {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}
	if !maxLimit.IsPositive() {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w - non-positive limit", biddingerrors.ErrLimitTooLow)
	}

	release, err := s.locks.Acquire(ctx, auctionID)
	if err != nil {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: acquire lock for auction %s: %w", auctionID, err)
	}
	defer release()

	var ab model.AutoBid
	var res *resolution
	created := false
	err = s.withRetries(auctionID, func() error {
		a, err := s.readLiveAuction(ctx, auctionID, userID)
		if err != nil {
			return err
		}
		if maxLimit.LessThan(a.StartingPrice) {
			return fmt.Errorf("service: %w - starting price is %s", biddingerrors.ErrLimitTooLow, a.StartingPrice.String())
		}

		// the registry create is not replayed when a ledger conflict forces
		// a recompute; only the resolution is recomputed
		if !created {
			if _, err := s.db.FindAutoBid(ctx, auctionID, userID); err == nil {
				return fmt.Errorf("service: auction %s user %s: %w", auctionID, userID, biddingerrors.ErrDuplicateAutoBid)
			} else if !errors.Is(err, biddingerrors.ErrAutoBidNotFound) {
				return fmt.Errorf("service: check auto-bid for user %s: %w", userID, err)
			}
			ab = model.AutoBid{
				AutoBidID: utils.GenerateID(),
				AuctionID: auctionID,
				UserID:    userID,
				MaxLimit:  maxLimit,
				IsActive:  true,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.db.CreateAutoBid(ctx, ab); err != nil {
				return fmt.Errorf("service: %w", err)
			}
			created = true
		}

		autoBids, err := s.loadAutoBids(ctx, a)
		if err != nil {
			return err
		}

		res = newResolution(a)
		res.addAutoBidder(userID)
		res.recordEvent(userID, model.EventAutoBidSet, maxLimit, map[string]any{"max_limit": maxLimit.String()})
		res.runAutoBids(autoBids)
		return s.commit(ctx, res)
	})
	if err != nil {
		return model.AutoBid{}, model.Auction{}, err
	}

	s.finish(ctx, res)
	return ab, res.auction, nil
}

// EditAutoBid changes the ceiling of an existing proxy bid and, if the proxy
// is armed, resolves any escalation the new ceiling triggers.
func (s *BiddingService) EditAutoBid(ctx context.Context, auctionID, userID string, newLimit decimal.Decimal) (model.AutoBid, model.Auction, error) {
	if auctionID == "" || userID == "" {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}
	if !newLimit.IsPositive() {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w - non-positive limit", biddingerrors.ErrLimitTooLow)
	}

	release, err := s.locks.Acquire(ctx, auctionID)
	if err != nil {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: acquire lock for auction %s: %w", auctionID, err)
	}
	defer release()

	var ab model.AutoBid
	var res *resolution
	err = s.withRetries(auctionID, func() error {
		a, err := s.readLiveAuction(ctx, auctionID, userID)
		if err != nil {
			return err
		}
		if newLimit.LessThan(a.StartingPrice) {
			return fmt.Errorf("service: %w - starting price is %s", biddingerrors.ErrLimitTooLow, a.StartingPrice.String())
		}

		existing, err := s.db.FindAutoBid(ctx, auctionID, userID)
		if err != nil {
			return fmt.Errorf("service: %w", err)
		}
		oldLimit := existing.MaxLimit
		existing.MaxLimit = newLimit
		if err := s.db.UpdateAutoBid(ctx, existing); err != nil {
			return fmt.Errorf("service: %w", err)
		}
		ab = existing

		autoBids, err := s.loadAutoBids(ctx, a)
		if err != nil {
			return err
		}

		res = newResolution(a)
		res.recordEvent(userID, model.EventAutoBidEdited, newLimit, map[string]any{
			"old_limit": oldLimit.String(),
			"new_limit": newLimit.String(),
		})
		if existing.IsActive {
			res.runAutoBids(autoBids)
		}
		return s.commit(ctx, res)
	})
	if err != nil {
		return model.AutoBid{}, model.Auction{}, err
	}

	s.finish(ctx, res)
	return ab, res.auction, nil
}

// ActivateAutoBid re-arms a previously deactivated proxy bid. The stored
// ceiling is reused; activating an already-armed proxy is a no-op.
func (s *BiddingService) ActivateAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, model.Auction, error) {
	if auctionID == "" || userID == "" {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}

	release, err := s.locks.Acquire(ctx, auctionID)
	if err != nil {
		return model.AutoBid{}, model.Auction{}, fmt.Errorf("service: acquire lock for auction %s: %w", auctionID, err)
	}
	defer release()

	var ab model.AutoBid
	var res *resolution
	err = s.withRetries(auctionID, func() error {
		a, err := s.readLiveAuction(ctx, auctionID, userID)
		if err != nil {
			return err
		}

		existing, err := s.db.FindAutoBid(ctx, auctionID, userID)
		if err != nil {
			return fmt.Errorf("service: %w", err)
		}
		ab = existing
		if existing.IsActive {
			res = newResolution(a)
			return nil
		}

		existing.IsActive = true
		if err := s.db.UpdateAutoBid(ctx, existing); err != nil {
			return fmt.Errorf("service: %w", err)
		}
		ab = existing

		autoBids, err := s.loadAutoBids(ctx, a)
		if err != nil {
			return err
		}

		res = newResolution(a)
		res.addAutoBidder(userID)
		res.recordEvent(userID, model.EventAutoBidActivated, existing.MaxLimit, map[string]any{"max_limit": existing.MaxLimit.String()})
		res.runAutoBids(autoBids)
		return s.commit(ctx, res)
	})
	if err != nil {
		return model.AutoBid{}, model.Auction{}, err
	}

	s.finish(ctx, res)
	return ab, res.auction, nil
}

// DeactivateAutoBid disarms a proxy bid and removes the user from the
// auction's auto-bidder set. The committed price and winner are never
// re-resolved: a deactivation only affects future candidate sets.
func (s *BiddingService) DeactivateAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, error) {
	if auctionID == "" || userID == "" {
		return model.AutoBid{}, fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}

	release, err := s.locks.Acquire(ctx, auctionID)
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("service: acquire lock for auction %s: %w", auctionID, err)
	}
	defer release()

	var ab model.AutoBid
	var res *resolution
	err = s.withRetries(auctionID, func() error {
		existing, err := s.db.FindAutoBid(ctx, auctionID, userID)
		if err != nil {
			return fmt.Errorf("service: %w", err)
		}

		a, err := s.db.GetAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("service: %w", err)
		}

		ab = existing
		if !existing.IsActive {
			res = newResolution(a)
			return nil
		}

		existing.IsActive = false
		if err := s.db.UpdateAutoBid(ctx, existing); err != nil {
			return fmt.Errorf("service: %w", err)
		}
		ab = existing

		res = newResolution(a)
		res.removeAutoBidder(userID)
		res.recordEvent(userID, model.EventAutoBidCancelled, decimal.Decimal{}, map[string]any{"max_limit": existing.MaxLimit.String()})
		return s.commit(ctx, res)
	})
	if err != nil {
		return model.AutoBid{}, err
	}

	s.finish(ctx, res)
	return ab, nil
}

// GetAuction returns the current ledger state of an auction.
func (s *BiddingService) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", biddingerrors.ErrInvalidBid)
	}
	a, err := s.db.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}
	return a, nil
}

// GetBidsForAuction returns every user's bid of record, highest first.
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID string) ([]model.ManualBid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.db.GetAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	bids, err := s.db.ListManualBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetAutoBid returns the user's auto-bid record for an auction.
func (s *BiddingService) GetAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, error) {
	if auctionID == "" || userID == "" {
		return model.AutoBid{}, fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}
	ab, err := s.db.FindAutoBid(ctx, auctionID, userID)
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("service: %w", err)
	}
	return ab, nil
}

// GetAuctionEvents returns the audit trail for an auction in append order.
func (s *BiddingService) GetAuctionEvents(ctx context.Context, auctionID string) ([]model.AuctionEvent, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.db.GetAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	events, err := s.db.ListEvents(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: list events for auction %s: %w", auctionID, err)
	}
	return events, nil
}

// readLiveAuction loads the auction and applies the preconditions shared by
// every mutating operation: the auction must be LIVE and the caller must not
// be the seller.
func (s *BiddingService) readLiveAuction(ctx context.Context, auctionID, userID string) (model.Auction, error) {
	a, err := s.db.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}
	if a.Status != model.StatusLive {
		return model.Auction{}, fmt.Errorf("service: auction %s is %s: %w", auctionID, a.Status, biddingerrors.ErrAuctionNotLive)
	}
	if a.SellerID == userID {
		return model.Auction{}, fmt.Errorf("service: auction %s: %w", auctionID, biddingerrors.ErrSellerBid)
	}
	return a, nil
}

// loadAutoBids fetches the registry records for an auction and verifies the
// autoBidders index against them. An index entry without a backing record is
// fatal for the auction: the pass aborts rather than repairing silently.
func (s *BiddingService) loadAutoBids(ctx context.Context, a model.Auction) ([]model.AutoBid, error) {
	autoBids, err := s.db.ListAutoBids(ctx, a.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("service: list auto-bids for auction %s: %w", a.AuctionID, err)
	}
	known := make(map[string]bool, len(autoBids))
	for _, ab := range autoBids {
		known[ab.UserID] = true
	}
	for _, id := range a.AutoBidders {
		if !known[id] {
			return nil, fmt.Errorf("service: auction %s user %s: %w", a.AuctionID, id, biddingerrors.ErrIndexCorrupt)
		}
	}
	return autoBids, nil
}

// commit persists the resolved auction state, skipping the write entirely
// when the pass changed nothing.
func (s *BiddingService) commit(ctx context.Context, res *resolution) error {
	if !res.changed {
		return nil
	}
	if err := s.db.CommitAuctionState(ctx, res.auction); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// withRetries re-runs a full resolution from a fresh snapshot when the commit
// detects a lost update. Stale deltas are never re-applied.
func (s *BiddingService) withRetries(auctionID string, attempt func() error) error {
	var err error
	for i := 0; i < s.maxRetries; i++ {
		err = attempt()
		if !errors.Is(err, biddingerrors.ErrVersionConflict) {
			return err
		}
		utils.Warn("resolution conflict, recomputing from fresh snapshot", map[string]any{
			"auction_id": auctionID,
			"attempt":    i + 1,
		})
	}
	return fmt.Errorf("service: auction %s: %w", auctionID, biddingerrors.ErrRetriesExhausted)
}

// finish runs the post-commit side effects: audit events (append failures are
// logged, never rolled back) and outbid notices on the async dispatcher.
// Notices addressed to the final winner are dropped - they regained the lead
// within the same pass.
func (s *BiddingService) finish(ctx context.Context, res *resolution) {
	for _, ev := range res.events {
		if err := s.db.AppendEvent(ctx, ev); err != nil {
			utils.Error("failed to append auction event", map[string]any{
				"auction_id": ev.AuctionID,
				"type":       ev.Type,
				"error":      err.Error(),
			})
		}
	}

	notified := make(map[string]bool, len(res.outbid))
	for i := len(res.outbid) - 1; i >= 0; i-- {
		n := res.outbid[i]
		if n.userID == res.auction.CurrentWinner || notified[n.userID] {
			continue
		}
		notified[n.userID] = true
		s.dispatcher.Enqueue(n.userID, res.auction.AuctionID, n.price)
	}
}
