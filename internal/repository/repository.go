package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"
)

// AuctionLedger is the durable record of an auction's current price, winner
// and lifecycle status. CommitAuctionState is a compare-and-swap on the row
// version so concurrent resolution passes can never interleave their writes.
type AuctionLedger interface {
	CreateAuction(ctx context.Context, a model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	CommitAuctionState(ctx context.Context, a model.Auction) error
}

// BidStore keeps each user's bid of record per auction (replaced, not appended).
type BidStore interface {
	UpsertManualBid(ctx context.Context, bid model.ManualBid) error
	GetManualBid(ctx context.Context, auctionID, userID string) (model.ManualBid, error)
	ListManualBids(ctx context.Context, auctionID string) ([]model.ManualBid, error)
}

// AutoBidRegistry holds proxy-bid ceilings, at most one per (auction, user).
type AutoBidRegistry interface {
	FindAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, error)
	CreateAutoBid(ctx context.Context, ab model.AutoBid) error
	UpdateAutoBid(ctx context.Context, ab model.AutoBid) error
	ListAutoBids(ctx context.Context, auctionID string) ([]model.AutoBid, error)
}

// EventLog is the append-only audit trail. Append failures must never roll
// back a committed ledger state; callers log and move on.
type EventLog interface {
	AppendEvent(ctx context.Context, ev model.AuctionEvent) error
	ListEvents(ctx context.Context, auctionID string) ([]model.AuctionEvent, error)
}

// AuctionDB composes the full storage surface the bidding service depends on.
type AuctionDB interface {
	AuctionLedger
	BidStore
	AutoBidRegistry
	EventLog
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction             // key: auctionID
	bids     map[string]map[string]model.ManualBid // key: auctionID -> userID
	autoBids map[string]map[string]model.AutoBid   // key: auctionID -> userID
	events   map[string][]model.AuctionEvent       // key: auctionID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string]map[string]model.ManualBid),
		autoBids: make(map[string]map[string]model.AutoBid),
		events:   make(map[string][]model.AuctionEvent),
	}
}

// CreateAuction registers a new listing in the ledger.
func (r *MemoryRepo) CreateAuction(_ context.Context, a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: already exists", a.AuctionID)
	}
	a.AutoBidders = append([]string(nil), a.AutoBidders...)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.UpdatedAt = a.CreatedAt
	r.auctions[a.AuctionID] = a
	return nil
}

// GetAuction returns a snapshot of the ledger row.
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	a.AutoBidders = append([]string(nil), a.AutoBidders...)
	return a, nil
}

// CommitAuctionState conditionally writes price, winner, status, bid count and
// the autoBidders index. The write only lands if the caller's snapshot version
// is still current; otherwise the caller must re-read and recompute.
func (r *MemoryRepo) CommitAuctionState(_ context.Context, a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.auctions[a.AuctionID]
	if !ok {
		return fmt.Errorf("commit auction %s: %w", a.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	if existing.Version != a.Version {
		return fmt.Errorf("commit auction %s: %w", a.AuctionID, biddingerrors.ErrVersionConflict)
	}

	existing.CurrentPrice = a.CurrentPrice
	existing.CurrentWinner = a.CurrentWinner
	existing.Status = a.Status
	existing.TotalBids = a.TotalBids
	existing.AutoBidders = append([]string(nil), a.AutoBidders...)
	existing.Version++
	existing.UpdatedAt = time.Now().UTC()
	r.auctions[a.AuctionID] = existing
	return nil
}

// UpsertManualBid replaces the user's bid of record for the auction.
func (r *MemoryRepo) UpsertManualBid(_ context.Context, bid model.ManualBid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("upsert bid for auction %s: %w", bid.AuctionID, biddingerrors.ErrAuctionNotFound)
	}

	byUser, ok := r.bids[bid.AuctionID]
	if !ok {
		byUser = make(map[string]model.ManualBid)
		r.bids[bid.AuctionID] = byUser
	}

	if existing, ok := byUser[bid.UserID]; ok {
		existing.Amount = bid.Amount
		existing.UpdatedAt = time.Now().UTC()
		byUser[bid.UserID] = existing
		return nil
	}
	byUser[bid.UserID] = bid
	return nil
}

// GetManualBid returns the user's bid of record for the auction.
func (r *MemoryRepo) GetManualBid(_ context.Context, auctionID, userID string) (model.ManualBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[auctionID][userID]
	if !ok {
		return model.ManualBid{}, fmt.Errorf("get bid for auction %s user %s: %w", auctionID, userID, biddingerrors.ErrBidNotFound)
	}
	return bid, nil
}

// ListManualBids returns all bids of record for an auction, highest first.
func (r *MemoryRepo) ListManualBids(_ context.Context, auctionID string) ([]model.ManualBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := r.bids[auctionID]
	bids := make([]model.ManualBid, 0, len(byUser))
	for _, b := range byUser {
		bids = append(bids, b)
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].Amount.GreaterThan(bids[j].Amount)
	})
	return bids, nil
}

// FindAutoBid returns the user's auto-bid record for the auction, if any.
func (r *MemoryRepo) FindAutoBid(_ context.Context, auctionID, userID string) (model.AutoBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ab, ok := r.autoBids[auctionID][userID]
	if !ok {
		return model.AutoBid{}, fmt.Errorf("find auto-bid for auction %s user %s: %w", auctionID, userID, biddingerrors.ErrAutoBidNotFound)
	}
	return ab, nil
}

// CreateAutoBid stores a new auto-bid record. A second record for the same
// (auction, user) pair is rejected, never merged.
func (r *MemoryRepo) CreateAutoBid(_ context.Context, ab model.AutoBid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[ab.AuctionID]; !ok {
		return fmt.Errorf("create auto-bid for auction %s: %w", ab.AuctionID, biddingerrors.ErrAuctionNotFound)
	}

	byUser, ok := r.autoBids[ab.AuctionID]
	if !ok {
		byUser = make(map[string]model.AutoBid)
		r.autoBids[ab.AuctionID] = byUser
	}
	if _, ok := byUser[ab.UserID]; ok {
		return fmt.Errorf("create auto-bid for auction %s user %s: %w", ab.AuctionID, ab.UserID, biddingerrors.ErrDuplicateAutoBid)
	}
	byUser[ab.UserID] = ab
	return nil
}

// UpdateAutoBid overwrites an existing auto-bid record.
func (r *MemoryRepo) UpdateAutoBid(_ context.Context, ab model.AutoBid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byUser := r.autoBids[ab.AuctionID]
	if _, ok := byUser[ab.UserID]; !ok {
		return fmt.Errorf("update auto-bid for auction %s user %s: %w", ab.AuctionID, ab.UserID, biddingerrors.ErrAutoBidNotFound)
	}
	ab.UpdatedAt = time.Now().UTC()
	byUser[ab.UserID] = ab
	return nil
}

// ListAutoBids returns every auto-bid record for an auction, earliest armed
// first so tie-breaks are deterministic.
func (r *MemoryRepo) ListAutoBids(_ context.Context, auctionID string) ([]model.AutoBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := r.autoBids[auctionID]
	out := make([]model.AutoBid, 0, len(byUser))
	for _, ab := range byUser {
		out = append(out, ab)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// AppendEvent records one audit log entry.
func (r *MemoryRepo) AppendEvent(_ context.Context, ev model.AuctionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	r.events[ev.AuctionID] = append(r.events[ev.AuctionID], ev)
	return nil
}

// ListEvents returns the audit trail for an auction in append order.
func (r *MemoryRepo) ListEvents(_ context.Context, auctionID string) ([]model.AuctionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.AuctionEvent(nil), r.events[auctionID]...), nil
}
