package main

import (
	"context"
	"fmt"
	"os"

	bidding "auction-house/internal/biddingService"
	"auction-house/internal/config"
	model "auction-house/internal/models"
	"auction-house/internal/notify"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/pkg/redislock"
	"auction-house/utils"

	rd "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open auction store: %v\n", err)
		os.Exit(1)
	}

	notifier, closeNotifier, err := openNotifier(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect notifier: %v\n", err)
		os.Exit(1)
	}
	defer closeNotifier()

	dispatcher := notify.NewDispatcher(notifier, cfg.NotifyBuffer)
	defer dispatcher.Close()

	opts := []bidding.Option{bidding.WithMaxCommitRetries(cfg.MaxCommitRetries)}
	if cfg.RedisAddr != "" {
		rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		opts = append(opts, bidding.WithLocker(redislock.New(rdb)))
		utils.Info("using redis auction locks", map[string]any{"addr": cfg.RedisAddr})
	}

	biddingSvc := bidding.NewBiddingService(db, dispatcher, opts...)

	router := server.SetupRouter(biddingSvc)

	fmt.Printf("Starting auction server on %s...\n", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openStore selects the durable sqlite store when DB_PATH is set, otherwise
// an in-memory store seeded with sample listings.
func openStore(cfg config.AppConfig) (repository.AuctionDB, error) {
	if cfg.DBPath != "" {
		return repository.OpenSQLite(cfg.DBPath)
	}

	repo := repository.NewMemoryRepo()
	prepopulateAuctions(repo)
	return repo, nil
}

// openNotifier selects the NATS publisher when NATS_URL is set, otherwise the
// log-backed notifier.
func openNotifier(cfg config.AppConfig) (notify.Notifier, func(), error) {
	if cfg.NATSURL == "" {
		return notify.LogNotifier{}, func() {}, nil
	}
	n, err := notify.NewNATSNotifier(cfg.NATSURL)
	if err != nil {
		return nil, nil, err
	}
	return n, n.Close, nil
}

// prepopulateAuctions adds sample live auctions to the in-memory repo
func prepopulateAuctions(repo *repository.MemoryRepo) {
	auctions := []model.Auction{
		{
			AuctionID:     "auction1",
			SellerID:      "seller1",
			Title:         "Vintage camera",
			Description:   "1970s rangefinder, working condition",
			StartingPrice: decimal.NewFromInt(100),
			MinIncrement:  decimal.NewFromInt(10),
			CurrentPrice:  decimal.NewFromInt(100),
			Status:        model.StatusLive,
		},
		{
			AuctionID:     "auction2",
			SellerID:      "seller1",
			Title:         "Mechanical keyboard",
			Description:   "Custom build, lubed switches",
			StartingPrice: decimal.NewFromInt(200),
			MinIncrement:  decimal.NewFromInt(25),
			BuyNowPrice:   decimal.NewFromInt(600),
			CurrentPrice:  decimal.NewFromInt(200),
			Status:        model.StatusLive,
		},
		{
			AuctionID:     "auction3",
			SellerID:      "seller2",
			Title:         "Road bike",
			Description:   "Carbon frame, size 56",
			StartingPrice: decimal.NewFromInt(150),
			MinIncrement:  decimal.NewFromInt(10),
			CurrentPrice:  decimal.NewFromInt(150),
			Status:        model.StatusUpcoming,
		},
	}

	for _, a := range auctions {
		if err := repo.CreateAuction(context.Background(), a); err != nil {
			utils.Warn("failed to seed auction", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
		}
	}
}
