package bidding

import (
	"testing"
	"time"

	model "auction-house/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func autoBid(userID string, limit int64, armedAt time.Time, active bool) model.AutoBid {
	return model.AutoBid{
		AutoBidID: "ab_" + userID,
		AuctionID: "a1",
		UserID:    userID,
		MaxLimit:  d(limit),
		IsActive:  active,
		CreatedAt: armedAt,
	}
}

func TestPickChallenger(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		auction      model.Auction
		autoBids     []model.AutoBid
		expectedUser string
		expectedOK   bool
	}{
		{
			name:       "no_auto_bids",
			auction:    liveAuction("a1", "seller1", 100, 10),
			expectedOK: false,
		},
		{
			name:    "highest_ceiling_wins",
			auction: liveAuction("a1", "seller1", 100, 10),
			autoBids: []model.AutoBid{
				autoBid("userA", 200, base, true),
				autoBid("userB", 300, base.Add(time.Minute), true),
			},
			expectedUser: "userB",
			expectedOK:   true,
		},
		{
			name:    "ceiling_tie_goes_to_earlier_arm",
			auction: liveAuction("a1", "seller1", 100, 10),
			autoBids: []model.AutoBid{
				autoBid("later", 300, base.Add(time.Minute), true),
				autoBid("earlier", 300, base, true),
			},
			expectedUser: "earlier",
			expectedOK:   true,
		},
		{
			name:    "inactive_excluded",
			auction: liveAuction("a1", "seller1", 100, 10),
			autoBids: []model.AutoBid{
				autoBid("userA", 500, base, false),
				autoBid("userB", 200, base, true),
			},
			expectedUser: "userB",
			expectedOK:   true,
		},
		{
			name: "current_winner_excluded",
			auction: func() model.Auction {
				a := liveAuction("a1", "seller1", 100, 10)
				a.CurrentWinner = "userA"
				return a
			}(),
			autoBids: []model.AutoBid{
				autoBid("userA", 500, base, true),
			},
			expectedOK: false,
		},
		{
			name:    "ceiling_at_current_price_cannot_challenge",
			auction: liveAuction("a1", "seller1", 100, 10),
			autoBids: []model.AutoBid{
				autoBid("userA", 100, base, true),
			},
			expectedOK: false,
		},
		{
			name:    "seller_proxy_excluded",
			auction: liveAuction("a1", "seller1", 100, 10),
			autoBids: []model.AutoBid{
				autoBid("seller1", 500, base, true),
			},
			expectedOK: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ch, ok := pickChallenger(&tc.auction, tc.autoBids)
			require.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				require.Equal(t, tc.expectedUser, ch.UserID)
			}
		})
	}
}

func TestRunAutoBids_WinnerPaysMinimalBeatingPrice(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := liveAuction("a1", "seller1", 100, 10)
	a.CurrentPrice = d(150)
	a.CurrentWinner = "manualLeader"

	r := newResolution(a)
	r.runAutoBids([]model.AutoBid{
		autoBid("userP", 200, base, true),
		autoBid("userQ", 180, base.Add(time.Second), true),
	})

	// userP beats the 180 runner-up ceiling by one increment, not at 200
	require.Equal(t, "userP", r.auction.CurrentWinner)
	require.True(t, r.auction.CurrentPrice.Equal(d(190)), "got %s", r.auction.CurrentPrice)
	require.True(t, r.changed)
}

func TestRunAutoBids_StablePassChangesNothing(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := liveAuction("a1", "seller1", 100, 10)
	a.CurrentPrice = d(190)
	a.CurrentWinner = "userP"

	r := newResolution(a)
	r.runAutoBids([]model.AutoBid{
		autoBid("userP", 200, base, true),
		autoBid("userQ", 180, base.Add(time.Second), true),
	})

	require.False(t, r.changed, "re-running a settled state must be a no-op")
	require.Empty(t, r.events)
	require.Empty(t, r.outbid)
	require.True(t, r.auction.CurrentPrice.Equal(d(190)))
	require.Equal(t, "userP", r.auction.CurrentWinner)
}

func TestRunAutoBids_CeilingNeverExceeded(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := liveAuction("a1", "seller1", 100, 10)
	bids := []model.AutoBid{
		autoBid("userA", 175, base, true),
		autoBid("userB", 240, base.Add(time.Second), true),
		autoBid("userC", 160, base.Add(2*time.Second), true),
	}

	r := newResolution(a)
	r.runAutoBids(bids)

	require.Equal(t, "userB", r.auction.CurrentWinner)
	require.True(t, r.auction.CurrentPrice.LessThanOrEqual(d(240)))
	// minimal beat of the 175 runner-up
	require.True(t, r.auction.CurrentPrice.Equal(d(185)), "got %s", r.auction.CurrentPrice)
}

func TestRunAutoBids_BuyNowClampStopsCascade(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := liveAuction("a1", "seller1", 100, 10)
	a.BuyNowPrice = d(250)

	r := newResolution(a)
	r.runAutoBids([]model.AutoBid{
		autoBid("userE", 300, base, true),
		autoBid("userF", 300, base.Add(time.Second), true),
	})

	require.Equal(t, model.StatusEnded, r.auction.Status)
	require.True(t, r.auction.CurrentPrice.Equal(d(250)))
	require.Equal(t, "userE", r.auction.CurrentWinner)

	var endedEvents int
	for _, ev := range r.events {
		if ev.Type == model.EventAuctionEnded {
			endedEvents++
		}
	}
	require.Equal(t, 1, endedEvents)
}

func TestLead_RecordsOutbidNoticeForDisplacedLeader(t *testing.T) {
	t.Parallel()

	a := liveAuction("a1", "seller1", 100, 10)
	a.CurrentPrice = d(110)
	a.CurrentWinner = "userA"

	r := newResolution(a)
	r.lead("userB", d(120), model.EventBidPlaced, map[string]any{"method": "manual"})

	require.Len(t, r.outbid, 1)
	require.Equal(t, "userA", r.outbid[0].userID)
	require.True(t, r.outbid[0].price.Equal(d(120)))
	require.Equal(t, 1, r.auction.TotalBids)
}

func TestLead_NoNoticeWhenLeaderRaisesOwnBid(t *testing.T) {
	t.Parallel()

	a := liveAuction("a1", "seller1", 100, 10)
	a.CurrentPrice = d(110)
	a.CurrentWinner = "userA"

	r := newResolution(a)
	r.lead("userA", d(130), model.EventBidPlaced, map[string]any{"method": "manual"})

	require.Empty(t, r.outbid)
	require.True(t, r.auction.CurrentPrice.Equal(d(130)))
}

func TestResolution_IndexMutators(t *testing.T) {
	t.Parallel()

	r := newResolution(liveAuction("a1", "seller1", 100, 10))

	r.addAutoBidder("userA")
	r.addAutoBidder("userA")
	require.Equal(t, []string{"userA"}, r.auction.AutoBidders)
	require.True(t, r.changed)

	r.removeAutoBidder("ghost")
	require.Equal(t, []string{"userA"}, r.auction.AutoBidders)

	r.removeAutoBidder("userA")
	require.Empty(t, r.auction.AutoBidders)
}

func TestRunAutoBids_TerminatesWithManyProxies(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := liveAuction("a1", "seller1", 100, 10)
	bids := make([]model.AutoBid, 0, 50)
	for i := 0; i < 50; i++ {
		bids = append(bids, autoBid(
			"user_"+string(rune('a'+i%26))+string(rune('0'+i/26)),
			int64(200+i*10),
			base.Add(time.Duration(i)*time.Second),
			true,
		))
	}

	r := newResolution(a)
	r.runAutoBids(bids)

	// the strongest ceiling wins at one increment over the runner-up
	require.True(t, r.auction.CurrentPrice.Equal(d(200+48*10+10)), "got %s", r.auction.CurrentPrice)
	require.True(t, r.auction.CurrentPrice.LessThanOrEqual(decimal.NewFromInt(690)))
}
