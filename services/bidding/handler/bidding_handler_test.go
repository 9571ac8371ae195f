package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// decimalEq matches decimal arguments by value rather than representation.
type decimalEq struct{ want decimal.Decimal }

func (m decimalEq) Matches(x interface{}) bool {
	got, ok := x.(decimal.Decimal)
	return ok && got.Equal(m.want)
}

func (m decimalEq) String() string {
	return fmt.Sprintf("decimal equal to %s", m.want.String())
}

func sampleAuction() model.Auction {
	return model.Auction{
		AuctionID:     "a1",
		SellerID:      "seller1",
		Title:         "vintage camera",
		StartingPrice: d(100),
		MinIncrement:  d(10),
		CurrentPrice:  d(160),
		CurrentWinner: "userB",
		Status:        model.StatusLive,
		TotalBids:     3,
	}
}

func sampleAutoBid() model.AutoBid {
	return model.AutoBid{
		AutoBidID: "ab1",
		AuctionID: "a1",
		UserID:    "userB",
		MaxLimit:  d(200),
		IsActive:  true,
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestPlaceBidHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           any
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		verify         func(t *testing.T, resp map[string]any)
	}{
		{
			name: "success",
			body: gin.H{"user_id": "userC", "amount": 150},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					PlaceManualBid(gomock.Any(), "a1", "userC", decimalEq{d(150)}).
					Return(sampleAuction(), nil)
			},
			expectedStatus: http.StatusCreated,
			verify: func(t *testing.T, resp map[string]any) {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok)
				require.Equal(t, "160", data["current_price"])
				require.Equal(t, "userB", data["current_winner"])
			},
		},
		{
			name:           "missing_user_id",
			body:           gin.H{"amount": 150},
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed_amount",
			body:           gin.H{"user_id": "userC", "amount": "not-a-number"},
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bid_too_low_carries_price_to_beat",
			body: gin.H{"user_id": "userC", "amount": 120},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					PlaceManualBid(gomock.Any(), "a1", "userC", decimalEq{d(120)}).
					Return(model.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrBidTooLow))
				m.EXPECT().
					GetAuction(gomock.Any(), "a1").
					Return(sampleAuction(), nil)
			},
			expectedStatus: http.StatusConflict,
			verify: func(t *testing.T, resp map[string]any) {
				require.Equal(t, "160", resp["current_price"], "rejection must tell the caller the price to beat")
			},
		},
		{
			name: "auction_not_found",
			body: gin.H{"user_id": "userC", "amount": 150},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					PlaceManualBid(gomock.Any(), "a1", "userC", decimalEq{d(150)}).
					Return(model.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrAuctionNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "active_auto_bid_blocks_manual",
			body: gin.H{"user_id": "userB", "amount": 200},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					PlaceManualBid(gomock.Any(), "a1", "userB", decimalEq{d(200)}).
					Return(model.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrActiveAutoBid))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "resolution_contention",
			body: gin.H{"user_id": "userC", "amount": 150},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					PlaceManualBid(gomock.Any(), "a1", "userC", decimalEq{d(150)}).
					Return(model.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrRetriesExhausted))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockService := NewMockBiddingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := gin.New()
			router.POST("/auctions/:auction_id/bids", NewBiddingHandler(mockService).PlaceBidHandler)

			w, resp := performRequest(t, router, http.MethodPost, "/auctions/a1/bids", tc.body)
			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.verify != nil {
				tc.verify(t, resp)
			}
		})
	}
}

func TestSetAutoBidHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           any
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		verify         func(t *testing.T, resp map[string]any)
	}{
		{
			name: "success",
			body: gin.H{"user_id": "userB", "max_limit": 200},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					SetAutoBid(gomock.Any(), "a1", "userB", decimalEq{d(200)}).
					Return(sampleAutoBid(), sampleAuction(), nil)
			},
			expectedStatus: http.StatusCreated,
			verify: func(t *testing.T, resp map[string]any) {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok)
				ab, ok := data["autobid"].(map[string]any)
				require.True(t, ok)
				require.Equal(t, "200", ab["max_limit"])
				require.Equal(t, true, ab["is_active"])
				auction, ok := data["auction"].(map[string]any)
				require.True(t, ok)
				require.Equal(t, "160", auction["current_price"])
			},
		},
		{
			name: "duplicate_rejected",
			body: gin.H{"user_id": "userB", "max_limit": 500},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					SetAutoBid(gomock.Any(), "a1", "userB", decimalEq{d(500)}).
					Return(model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrDuplicateAutoBid))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "limit_too_low_carries_price",
			body: gin.H{"user_id": "userB", "max_limit": 50},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					SetAutoBid(gomock.Any(), "a1", "userB", decimalEq{d(50)}).
					Return(model.AutoBid{}, model.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrLimitTooLow))
				m.EXPECT().
					GetAuction(gomock.Any(), "a1").
					Return(sampleAuction(), nil)
			},
			expectedStatus: http.StatusBadRequest,
			verify: func(t *testing.T, resp map[string]any) {
				require.Equal(t, "160", resp["current_price"])
			},
		},
		{
			name:           "missing_limit",
			body:           gin.H{"user_id": "userB"},
			mockSetup:      func(m *MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockService := NewMockBiddingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := gin.New()
			router.POST("/auctions/:auction_id/autobids", NewBiddingHandler(mockService).SetAutoBidHandler)

			w, resp := performRequest(t, router, http.MethodPost, "/auctions/a1/autobids", tc.body)
			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.verify != nil {
				tc.verify(t, resp)
			}
		})
	}
}

func TestEditAutoBidHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := NewMockBiddingServiceInterface(ctrl)

	edited := sampleAutoBid()
	edited.MaxLimit = d(400)
	mockService.EXPECT().
		EditAutoBid(gomock.Any(), "a1", "userB", decimalEq{d(400)}).
		Return(edited, sampleAuction(), nil)

	router := gin.New()
	router.PUT("/auctions/:auction_id/autobids", NewBiddingHandler(mockService).EditAutoBidHandler)

	w, resp := performRequest(t, router, http.MethodPut, "/auctions/a1/autobids",
		gin.H{"user_id": "userB", "new_max_limit": 400})
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	ab := data["autobid"].(map[string]any)
	require.Equal(t, "400", ab["max_limit"])
}

func TestActivateAndDeactivateHandlers(t *testing.T) {
	t.Parallel()

	t.Run("activate", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().
			ActivateAutoBid(gomock.Any(), "a1", "userB").
			Return(sampleAutoBid(), sampleAuction(), nil)

		router := gin.New()
		router.POST("/auctions/:auction_id/autobids/activate", NewBiddingHandler(mockService).ActivateAutoBidHandler)

		w, resp := performRequest(t, router, http.MethodPost, "/auctions/a1/autobids/activate",
			gin.H{"user_id": "userB"})
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		ab := data["autobid"].(map[string]any)
		require.Equal(t, true, ab["is_active"])
	})

	t.Run("deactivate", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		disarmed := sampleAutoBid()
		disarmed.IsActive = false
		mockService.EXPECT().
			DeactivateAutoBid(gomock.Any(), "a1", "userB").
			Return(disarmed, nil)

		router := gin.New()
		router.POST("/auctions/:auction_id/autobids/deactivate", NewBiddingHandler(mockService).DeactivateAutoBidHandler)

		w, resp := performRequest(t, router, http.MethodPost, "/auctions/a1/autobids/deactivate",
			gin.H{"user_id": "userB"})
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, false, data["is_active"])
	})

	t.Run("deactivate_not_found", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().
			DeactivateAutoBid(gomock.Any(), "a1", "ghost").
			Return(model.AutoBid{}, fmt.Errorf("service: %w", biddingerrors.ErrAutoBidNotFound))

		router := gin.New()
		router.POST("/auctions/:auction_id/autobids/deactivate", NewBiddingHandler(mockService).DeactivateAutoBidHandler)

		w, _ := performRequest(t, router, http.MethodPost, "/auctions/a1/autobids/deactivate",
			gin.H{"user_id": "ghost"})
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReadHandlers(t *testing.T) {
	t.Parallel()

	t.Run("get_auction", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetAuction(gomock.Any(), "a1").Return(sampleAuction(), nil)

		router := gin.New()
		router.GET("/auctions/:auction_id", NewBiddingHandler(mockService).GetAuctionHandler)

		w, resp := performRequest(t, router, http.MethodGet, "/auctions/a1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "a1", data["auction_id"])
		require.Equal(t, model.StatusLive, data["status"])
	})

	t.Run("get_bids_empty_list_not_null", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetBidsForAuction(gomock.Any(), "a1").Return(nil, nil)

		router := gin.New()
		router.GET("/auctions/:auction_id/bids", NewBiddingHandler(mockService).GetBidsHandler)

		w, resp := performRequest(t, router, http.MethodGet, "/auctions/a1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data, ok := resp["data"].([]any)
		require.True(t, ok, "empty bid list must serialize as [], got %T", resp["data"])
		require.Empty(t, data)
	})

	t.Run("get_autobid", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetAutoBid(gomock.Any(), "a1", "userB").Return(sampleAutoBid(), nil)

		router := gin.New()
		router.GET("/auctions/:auction_id/autobids/:user_id", NewBiddingHandler(mockService).GetAutoBidHandler)

		w, resp := performRequest(t, router, http.MethodGet, "/auctions/a1/autobids/userB", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "userB", data["user_id"])
	})

	t.Run("get_events", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockService := NewMockBiddingServiceInterface(ctrl)
		mockService.EXPECT().GetAuctionEvents(gomock.Any(), "a1").Return([]model.AuctionEvent{
			{EventID: "ev1", AuctionID: "a1", Type: model.EventBidPlaced, Amount: d(110)},
		}, nil)

		router := gin.New()
		router.GET("/auctions/:auction_id/events", NewBiddingHandler(mockService).GetEventsHandler)

		w, resp := performRequest(t, router, http.MethodGet, "/auctions/a1/events", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].([]any)
		require.Len(t, data, 1)
		ev := data[0].(map[string]any)
		require.Equal(t, model.EventBidPlaced, ev["type"])
	})
}
