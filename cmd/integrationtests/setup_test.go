package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	bidding "auction-house/internal/biddingService"
	model "auction-house/internal/models"
	"auction-house/internal/notify"
	"auction-house/internal/repository"
	"auction-house/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SetupTestRouter initializes the router over an in-memory repository seeded
// with the given auctions.
func SetupTestRouter(t *testing.T, auctions ...model.Auction) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	for _, a := range auctions {
		if err := repo.CreateAuction(context.Background(), a); err != nil {
			t.Fatalf("failed to seed auction %s: %v", a.AuctionID, err)
		}
	}

	dispatcher := notify.NewDispatcher(notify.LogNotifier{}, 64)
	t.Cleanup(dispatcher.Close)

	service := bidding.NewBiddingService(repo, dispatcher)
	return server.SetupRouter(service)
}

// LiveAuction builds a LIVE auction seed with the given pricing.
func LiveAuction(id, seller string, startingPrice, minIncrement int64) model.Auction {
	return model.Auction{
		AuctionID:     id,
		SellerID:      seller,
		Title:         "integration test listing",
		StartingPrice: decimal.NewFromInt(startingPrice),
		MinIncrement:  decimal.NewFromInt(minIncrement),
		CurrentPrice:  decimal.NewFromInt(startingPrice),
		Status:        model.StatusLive,
	}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// data unwraps the envelope's data object, failing the test if it is missing.
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response carries no data object: %v", resp)
	}
	return d
}
