package notify

import (
	"context"
	"sync"
	"time"

	"auction-house/utils"

	"github.com/shopspring/decimal"
)

// Notifier delivers out-of-band outbid notices. Delivery is best-effort: a
// failed notification never affects the committed auction state.
type Notifier interface {
	NotifyOutbid(ctx context.Context, userID, auctionID string, newPrice decimal.Decimal) error
}

// LogNotifier records outbid notices in the service log. It is the default
// backend when no broker is configured.
type LogNotifier struct{}

// NotifyOutbid logs the notice.
func (LogNotifier) NotifyOutbid(_ context.Context, userID, auctionID string, newPrice decimal.Decimal) error {
	utils.Info("user outbid", map[string]any{
		"user_id":    userID,
		"auction_id": auctionID,
		"new_price":  newPrice.String(),
	})
	return nil
}

type notice struct {
	userID    string
	auctionID string
	newPrice  decimal.Decimal
}

// Dispatcher fans outbid notices out to a Notifier on a separate goroutine so
// dispatch never runs inside a resolution critical section. Enqueue never
// blocks; when the buffer is full the notice is dropped with a warning.
type Dispatcher struct {
	notifier Notifier
	queue    chan notice
	done     chan struct{}
	once     sync.Once
}

// NewDispatcher starts a dispatcher with the given buffer size.
func NewDispatcher(n Notifier, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		notifier: n,
		queue:    make(chan notice, buffer),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue queues an outbid notice for asynchronous delivery.
func (d *Dispatcher) Enqueue(userID, auctionID string, newPrice decimal.Decimal) {
	select {
	case d.queue <- notice{userID: userID, auctionID: auctionID, newPrice: newPrice}:
	default:
		utils.Warn("notification queue full, dropping outbid notice", map[string]any{
			"user_id":    userID,
			"auction_id": auctionID,
		})
	}
}

// Close stops accepting notices and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.notifier.NotifyOutbid(ctx, n.userID, n.auctionID, n.newPrice); err != nil {
			utils.Warn("outbid notification failed", map[string]any{
				"user_id":    n.userID,
				"auction_id": n.auctionID,
				"error":      err.Error(),
			})
		}
		cancel()
	}
}
