package bidding

import (
	"context"
	"sync"
)

// Locker serializes resolution passes per auction. Acquire blocks until the
// auction's slot is free or ctx is cancelled; the returned func releases it.
type Locker interface {
	Acquire(ctx context.Context, auctionID string) (func(), error)
}

// KeyedMutex is the in-process Locker: one slot per auction id. Operations on
// different auctions never contend.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewKeyedMutex creates an empty per-auction lock table.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]chan struct{})}
}

// Acquire takes the auction's slot, creating it on first use.
func (k *KeyedMutex) Acquire(ctx context.Context, auctionID string) (func(), error) {
	k.mu.Lock()
	slot, ok := k.slots[auctionID]
	if !ok {
		slot = make(chan struct{}, 1)
		k.slots[auctionID] = slot
	}
	k.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
