package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
)

// OutbidMessage is the wire payload published for every outbid notice.
type OutbidMessage struct {
	UserID    string          `json:"user_id"`
	AuctionID string          `json:"auction_id"`
	NewPrice  decimal.Decimal `json:"new_price"`
	OutbidAt  time.Time       `json:"outbid_at"`
}

// NATSNotifier publishes outbid notices to a NATS subject per auction, for
// downstream mail/websocket services to consume.
type NATSNotifier struct {
	nc *nats.Conn
}

// NewNATSNotifier connects to the NATS server at url.
func NewNATSNotifier(url string) (*NATSNotifier, error) {
	nc, err := nats.Connect(url,
		nats.Name("auction-house-notifier"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATSNotifier{nc: nc}, nil
}

// NotifyOutbid publishes the notice to auction.outbid.<auctionID>.
func (n *NATSNotifier) NotifyOutbid(_ context.Context, userID, auctionID string, newPrice decimal.Decimal) error {
	msg := OutbidMessage{
		UserID:    userID,
		AuctionID: auctionID,
		NewPrice:  newPrice,
		OutbidAt:  time.Now().UTC(),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbid message: %w", err)
	}
	if err := n.nc.Publish(fmt.Sprintf("auction.outbid.%s", auctionID), b); err != nil {
		return fmt.Errorf("publish outbid for auction %s: %w", auctionID, err)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (n *NATSNotifier) Close() {
	if n.nc != nil {
		n.nc.Close()
	}
}
