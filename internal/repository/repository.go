package repository

import (
	"ticker-screener/config"
	"ticker-screener/pkg/cache"
	"ticker-screener/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	MarketDataRepo MarketDataRepository
	WatchlistRepo  WatchlistRepository
	SnapshotRepo   ScreenSnapshotRepository
}

func NewRepository(cfg *config.Config, inmemCache cache.Cache, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		MarketDataRepo: NewPolygonRepository(cfg, inmemCache, log),
		WatchlistRepo:  NewWatchlistRepository(db),
		SnapshotRepo:   NewScreenSnapshotRepository(db),
	}
}
