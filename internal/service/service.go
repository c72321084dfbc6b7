package service

import (
	"ticker-screener/config"
	"ticker-screener/internal/repository"
	"ticker-screener/pkg/logger"
	"ticker-screener/pkg/telegram"
)

type Service struct {
	AnalyzerService  AnalyzerService
	WatchlistService WatchlistService
	ChartService     ChartService
	ScanScheduler    *ScanScheduler
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier *telegram.Notifier,
) *Service {
	analyzerService := NewAnalyzerService(cfg, log, repo.MarketDataRepo, repo.WatchlistRepo, repo.SnapshotRepo)
	watchlistService := NewWatchlistService(log, repo.WatchlistRepo)
	chartService := NewChartService(log, repo.MarketDataRepo)
	scanScheduler := NewScanScheduler(cfg, log, analyzerService, notifier)

	return &Service{
		AnalyzerService:  analyzerService,
		WatchlistService: watchlistService,
		ChartService:     chartService,
		ScanScheduler:    scanScheduler,
	}
}
