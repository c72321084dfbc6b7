package service

import (
	"context"
	"strings"

	"ticker-screener/internal/model"
	"ticker-screener/internal/repository"
	"ticker-screener/pkg/logger"
)

type WatchlistService interface {
	List(ctx context.Context) ([]model.WatchlistItem, error)
	Add(ctx context.Context, ticker, assetType string) (*model.WatchlistItem, error)
	Remove(ctx context.Context, ticker string) (bool, error)
}

type watchlistService struct {
	log           *logger.Logger
	watchlistRepo repository.WatchlistRepository
}

func NewWatchlistService(log *logger.Logger, watchlistRepo repository.WatchlistRepository) WatchlistService {
	return &watchlistService{log: log, watchlistRepo: watchlistRepo}
}

func (s *watchlistService) List(ctx context.Context) ([]model.WatchlistItem, error) {
	return s.watchlistRepo.List(ctx)
}

func (s *watchlistService) Add(ctx context.Context, ticker, assetType string) (*model.WatchlistItem, error) {
	item, err := s.watchlistRepo.Add(ctx, ticker, assetType)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Ticker added to watchlist",
		logger.StringField("ticker", item.Ticker),
		logger.StringField("asset_type", item.AssetType),
	)
	return item, nil
}

// Remove reports whether the ticker was actually on the watchlist.
func (s *watchlistService) Remove(ctx context.Context, ticker string) (bool, error) {
	affected, err := s.watchlistRepo.Remove(ctx, ticker)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	s.log.InfoContext(ctx, "Ticker removed from watchlist",
		logger.StringField("ticker", strings.ToUpper(ticker)),
	)
	return true, nil
}
