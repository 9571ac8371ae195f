package redislock

import (
	"context"
	"fmt"
	"time"

	"auction-house/utils"

	rd "github.com/redis/go-redis/v9"
)

// luaReleaseIfMatch deletes the lock only when the stored token matches, so a
// late release can never drop a lock re-acquired by another instance.
const luaReleaseIfMatch = `
local lockKey = KEYS[1]
local token = ARGV[1]
if redis.call('GET', lockKey) == token then
  return redis.call('DEL', lockKey)
end
return 0
`

// AuctionLock serializes resolution passes across engine instances via a
// Redis SET NX lock per auction. Intended for deployments where several
// processes share one durable store; single-process runs use the in-process
// keyed mutex instead.
type AuctionLock struct {
	rdb       *rd.Client
	ttl       time.Duration
	retryWait time.Duration
}

// New creates an AuctionLock with default TTL and retry interval.
func New(rdb *rd.Client) *AuctionLock {
	return &AuctionLock{
		rdb:       rdb,
		ttl:       10 * time.Second,
		retryWait: 25 * time.Millisecond,
	}
}

func lockKey(auctionID string) string {
	return "auction:resolve_lock:" + auctionID
}

// Acquire spins on SET NX until the lock is taken or ctx expires.
func (l *AuctionLock) Acquire(ctx context.Context, auctionID string) (func(), error) {
	key := lockKey(auctionID)
	token := utils.GenerateID()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock for auction %s: %w", auctionID, err)
		}
		if ok {
			return func() { l.release(key, token, auctionID) }, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock for auction %s: %w", auctionID, ctx.Err())
		case <-time.After(l.retryWait):
		}
	}
}

func (l *AuctionLock) release(key, token, auctionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := l.rdb.Eval(ctx, luaReleaseIfMatch, []string{key}, token).Int(); err != nil {
		utils.Warn("failed to release auction lock", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
	}
}
