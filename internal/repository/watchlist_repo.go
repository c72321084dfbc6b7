package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ticker-screener/internal/model"
)

type WatchlistRepository interface {
	List(ctx context.Context) ([]model.WatchlistItem, error)
	GetByTicker(ctx context.Context, ticker string) (*model.WatchlistItem, error)
	Add(ctx context.Context, ticker, assetType string) (*model.WatchlistItem, error)
	Remove(ctx context.Context, ticker string) (int64, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (w *watchlistRepository) List(ctx context.Context) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := w.db.WithContext(ctx).Order("added_at DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (w *watchlistRepository) GetByTicker(ctx context.Context, ticker string) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := w.db.WithContext(ctx).Where("ticker = ?", strings.ToUpper(ticker)).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Add upserts: re-adding a ticker replaces its asset type and resets the
// added_at ordering.
func (w *watchlistRepository) Add(ctx context.Context, ticker, assetType string) (*model.WatchlistItem, error) {
	item := model.WatchlistItem{
		Ticker:    strings.ToUpper(ticker),
		AssetType: assetType,
		AddedAt:   time.Now().UTC(),
	}

	err := w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"asset_type", "added_at", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (w *watchlistRepository) Remove(ctx context.Context, ticker string) (int64, error) {
	db := w.db.WithContext(ctx).Where("ticker = ?", strings.ToUpper(ticker)).Delete(&model.WatchlistItem{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}

func (w *watchlistRepository) Clear(ctx context.Context) error {
	return w.db.WithContext(ctx).Where("1 = 1").Delete(&model.WatchlistItem{}).Error
}

func (w *watchlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := w.db.WithContext(ctx).Model(&model.WatchlistItem{}).Count(&count).Error
	return count, err
}
