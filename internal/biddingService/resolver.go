package bidding

import (
	"time"

	model "auction-house/internal/models"
	"auction-house/utils"

	"github.com/shopspring/decimal"
)

// resolution is the working state of one pass: the auction snapshot being
// mutated, the audit events to append after commit, and the outbid notices to
// dispatch. A pass that changes nothing commits nothing.
type resolution struct {
	auction model.Auction
	events  []model.AuctionEvent
	outbid  []outbidNotice
	changed bool
}

type outbidNotice struct {
	userID string
	price  decimal.Decimal
}

func newResolution(a model.Auction) *resolution {
	return &resolution{auction: a}
}

// recordEvent queues an audit entry for post-commit append.
func (r *resolution) recordEvent(userID, eventType string, amount decimal.Decimal, details map[string]any) {
	r.events = append(r.events, model.AuctionEvent{
		EventID:   utils.GenerateID(),
		AuctionID: r.auction.AuctionID,
		UserID:    userID,
		Type:      eventType,
		Amount:    amount,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	})
}

// addAutoBidder puts the user in the auction's auto-bidder index.
func (r *resolution) addAutoBidder(userID string) {
	for _, id := range r.auction.AutoBidders {
		if id == userID {
			return
		}
	}
	r.auction.AutoBidders = append(r.auction.AutoBidders, userID)
	r.changed = true
}

// removeAutoBidder drops the user from the auction's auto-bidder index.
func (r *resolution) removeAutoBidder(userID string) {
	for i, id := range r.auction.AutoBidders {
		if id == userID {
			r.auction.AutoBidders = append(r.auction.AutoBidders[:i], r.auction.AutoBidders[i+1:]...)
			r.changed = true
			return
		}
	}
}

// lead moves the lead to userID at price, clamping at the buy-now price and
// ending the auction when it is met. Records the audit event and an outbid
// notice for the displaced leader.
func (r *resolution) lead(userID string, price decimal.Decimal, eventType string, details map[string]any) {
	a := &r.auction
	if a.HasBuyNow() && price.GreaterThanOrEqual(a.BuyNowPrice) {
		price = a.BuyNowPrice
		a.Status = model.StatusEnded
	}

	prev := a.CurrentWinner
	a.CurrentPrice = price
	a.CurrentWinner = userID
	a.TotalBids++
	r.changed = true

	r.recordEvent(userID, eventType, price, details)
	if prev != "" && prev != userID {
		r.outbid = append(r.outbid, outbidNotice{userID: prev, price: price})
	}
	if a.Status == model.StatusEnded {
		r.recordEvent(userID, model.EventAuctionEnded, price, map[string]any{"reason": "buy_now"})
	}
}

// runAutoBids escalates armed proxies until no candidate can beat the leader.
// Each iteration pits the strongest challenger against the leader's
// sustainable amount: either the challenger takes the lead at the minimum
// beating price, or the defending proxy re-raises just enough to hold it.
// Both outcomes price one proxy out permanently, so the loop runs at most
// once per armed auto-bid.
func (r *resolution) runAutoBids(autoBids []model.AutoBid) {
	a := &r.auction
	byUser := make(map[string]model.AutoBid, len(autoBids))
	for _, ab := range autoBids {
		byUser[ab.UserID] = ab
	}

	for range autoBids {
		if a.Status != model.StatusLive {
			return
		}
		ch, ok := pickChallenger(a, autoBids)
		if !ok {
			return
		}

		// the amount the current leader can sustain: their ceiling when an
		// armed proxy defends the lead, otherwise their committed price
		defense := a.CurrentPrice
		defender, defending := byUser[a.CurrentWinner]
		defending = defending && defender.IsActive
		if defending {
			defense = defender.MaxLimit
		}

		inc := a.MinIncrement
		challengerWins := ch.MaxLimit.GreaterThan(defense) ||
			(defending && ch.MaxLimit.Equal(defense) && ch.CreatedAt.Before(defender.CreatedAt))

		if challengerWins {
			price := decimal.Min(ch.MaxLimit, decimal.Max(a.CurrentPrice.Add(inc), defense.Add(inc)))
			r.lead(ch.UserID, price, model.EventAutoBidTriggered, map[string]any{
				"method":    "auto",
				"max_limit": ch.MaxLimit.String(),
			})
		} else {
			price := decimal.Min(defense, ch.MaxLimit.Add(inc))
			r.lead(a.CurrentWinner, price, model.EventAutoBidTriggered, map[string]any{
				"method":    "auto",
				"max_limit": defender.MaxLimit.String(),
			})
		}
	}
}

// pickChallenger returns the strongest armed proxy not currently leading
// whose ceiling strictly exceeds the current price. Ties on ceiling go to the
// earliest-armed proxy.
func pickChallenger(a *model.Auction, autoBids []model.AutoBid) (model.AutoBid, bool) {
	var best model.AutoBid
	found := false
	for _, ab := range autoBids {
		if !ab.IsActive || ab.UserID == a.CurrentWinner || ab.UserID == a.SellerID {
			continue
		}
		if !ab.MaxLimit.GreaterThan(a.CurrentPrice) {
			continue
		}
		if !found || ab.MaxLimit.GreaterThan(best.MaxLimit) ||
			(ab.MaxLimit.Equal(best.MaxLimit) && ab.CreatedAt.Before(best.CreatedAt)) {
			best = ab
			found = true
		}
	}
	return best, found
}
