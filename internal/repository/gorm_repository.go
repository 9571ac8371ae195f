package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormRepo is the durable AuctionDB backed by gorm. The auction row carries a
// version column; CommitAuctionState is a conditional UPDATE on it, so two
// engine instances sharing one database cannot interleave resolutions.
type GormRepo struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and migrates the
// auction schema.
func OpenSQLite(path string) (*GormRepo, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewGormRepo(db)
}

// NewGormRepo wraps an existing gorm connection and runs migrations.
func NewGormRepo(db *gorm.DB) (*GormRepo, error) {
	if err := db.AutoMigrate(
		&model.Auction{},
		&model.ManualBid{},
		&model.AutoBid{},
		&model.AuctionEvent{},
	); err != nil {
		return nil, fmt.Errorf("migrate auction schema: %w", err)
	}
	return &GormRepo{db: db}, nil
}

// CreateAuction registers a new listing in the ledger.
func (r *GormRepo) CreateAuction(ctx context.Context, a model.Auction) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.UpdatedAt = a.CreatedAt
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, err)
	}
	return nil
}

// GetAuction returns a snapshot of the ledger row.
func (r *GormRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var a model.Auction
	err := r.db.WithContext(ctx).First(&a, "auction_id = ?", auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// CommitAuctionState applies the resolved state if and only if the snapshot
// version is still current. Zero rows affected means another pass committed
// first and the caller must recompute from a fresh read.
func (r *GormRepo) CommitAuctionState(ctx context.Context, a model.Auction) error {
	res := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("auction_id = ? AND version = ?", a.AuctionID, a.Version).
		Select("current_price", "current_winner", "status", "total_bids", "auto_bidders", "version", "updated_at").
		Updates(model.Auction{
			CurrentPrice:  a.CurrentPrice,
			CurrentWinner: a.CurrentWinner,
			Status:        a.Status,
			TotalBids:     a.TotalBids,
			AutoBidders:   a.AutoBidders,
			Version:       a.Version + 1,
			UpdatedAt:     time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("commit auction %s: %w", a.AuctionID, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Auction{}).
			Where("auction_id = ?", a.AuctionID).Count(&count).Error; err != nil {
			return fmt.Errorf("commit auction %s: %w", a.AuctionID, err)
		}
		if count == 0 {
			return fmt.Errorf("commit auction %s: %w", a.AuctionID, biddingerrors.ErrAuctionNotFound)
		}
		return fmt.Errorf("commit auction %s: %w", a.AuctionID, biddingerrors.ErrVersionConflict)
	}
	return nil
}

// UpsertManualBid replaces the user's bid of record for the auction.
func (r *GormRepo) UpsertManualBid(ctx context.Context, bid model.ManualBid) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auction_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&bid).Error
	if err != nil {
		return fmt.Errorf("upsert bid for auction %s user %s: %w", bid.AuctionID, bid.UserID, err)
	}
	return nil
}

// GetManualBid returns the user's bid of record for the auction.
func (r *GormRepo) GetManualBid(ctx context.Context, auctionID, userID string) (model.ManualBid, error) {
	var bid model.ManualBid
	err := r.db.WithContext(ctx).
		First(&bid, "auction_id = ? AND user_id = ?", auctionID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ManualBid{}, fmt.Errorf("get bid for auction %s user %s: %w", auctionID, userID, biddingerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.ManualBid{}, fmt.Errorf("get bid for auction %s user %s: %w", auctionID, userID, err)
	}
	return bid, nil
}

// ListManualBids returns all bids of record for an auction, highest first.
func (r *GormRepo) ListManualBids(ctx context.Context, auctionID string) ([]model.ManualBid, error) {
	var bids []model.ManualBid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("amount DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// FindAutoBid returns the user's auto-bid record for the auction, if any.
func (r *GormRepo) FindAutoBid(ctx context.Context, auctionID, userID string) (model.AutoBid, error) {
	var ab model.AutoBid
	err := r.db.WithContext(ctx).
		First(&ab, "auction_id = ? AND user_id = ?", auctionID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AutoBid{}, fmt.Errorf("find auto-bid for auction %s user %s: %w", auctionID, userID, biddingerrors.ErrAutoBidNotFound)
	}
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("find auto-bid for auction %s user %s: %w", auctionID, userID, err)
	}
	return ab, nil
}

// CreateAutoBid stores a new auto-bid record; the unique index on
// (auction_id, user_id) rejects duplicates.
func (r *GormRepo) CreateAutoBid(ctx context.Context, ab model.AutoBid) error {
	err := r.db.WithContext(ctx).Create(&ab).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("create auto-bid for auction %s user %s: %w", ab.AuctionID, ab.UserID, biddingerrors.ErrDuplicateAutoBid)
	}
	if err != nil {
		return fmt.Errorf("create auto-bid for auction %s user %s: %w", ab.AuctionID, ab.UserID, err)
	}
	return nil
}

// UpdateAutoBid overwrites the ceiling and arm flag of an existing record.
func (r *GormRepo) UpdateAutoBid(ctx context.Context, ab model.AutoBid) error {
	res := r.db.WithContext(ctx).Model(&model.AutoBid{}).
		Where("auction_id = ? AND user_id = ?", ab.AuctionID, ab.UserID).
		Select("max_limit", "is_active", "updated_at").
		Updates(model.AutoBid{
			MaxLimit:  ab.MaxLimit,
			IsActive:  ab.IsActive,
			UpdatedAt: time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update auto-bid for auction %s user %s: %w", ab.AuctionID, ab.UserID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update auto-bid for auction %s user %s: %w", ab.AuctionID, ab.UserID, biddingerrors.ErrAutoBidNotFound)
	}
	return nil
}

// ListAutoBids returns every auto-bid record for an auction, earliest armed first.
func (r *GormRepo) ListAutoBids(ctx context.Context, auctionID string) ([]model.AutoBid, error) {
	var out []model.AutoBid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list auto-bids for auction %s: %w", auctionID, err)
	}
	return out, nil
}

// AppendEvent records one audit log entry.
func (r *GormRepo) AppendEvent(ctx context.Context, ev model.AuctionEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("append event for auction %s: %w", ev.AuctionID, err)
	}
	return nil
}

// ListEvents returns the audit trail for an auction in append order.
func (r *GormRepo) ListEvents(ctx context.Context, auctionID string) ([]model.AuctionEvent, error) {
	var out []model.AuctionEvent
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list events for auction %s: %w", auctionID, err)
	}
	return out, nil
}
