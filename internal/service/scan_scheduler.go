package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"ticker-screener/config"
	"ticker-screener/internal/dto"
	"ticker-screener/pkg/logger"
	"ticker-screener/pkg/telegram"
	"ticker-screener/pkg/utils"
)

// ScanScheduler runs the full watchlist screen on a cron schedule and pushes
// a summary to Telegram when a notifier is configured. The notifier may be
// nil; the scan still runs and its snapshot is still persisted.
type ScanScheduler struct {
	cfg      *config.Config
	log      *logger.Logger
	analyzer AnalyzerService
	notifier *telegram.Notifier
	cron     *cron.Cron
}

func NewScanScheduler(
	cfg *config.Config,
	log *logger.Logger,
	analyzer AnalyzerService,
	notifier *telegram.Notifier,
) *ScanScheduler {
	return &ScanScheduler{
		cfg:      cfg,
		log:      log,
		analyzer: analyzer,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (s *ScanScheduler) Start() error {
	if !s.cfg.Screener.ScanEnabled {
		s.log.Info("Scheduled scans disabled")
		return nil
	}

	// A panicking scan must not take the cron loop down with it.
	_, err := s.cron.AddFunc(s.cfg.Screener.ScanCron, func() {
		utils.GoSafe(s.runScan)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule watchlist scan: %w", err)
	}

	s.cron.Start()
	s.log.Info("Scheduled scans started",
		logger.StringField("cron", s.cfg.Screener.ScanCron),
	)
	return nil
}

// Stop halts the cron loop and waits for a running scan to finish.
func (s *ScanScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *ScanScheduler) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Screener.Timeout)
	defer cancel()

	results, err := s.analyzer.AnalyzeWatchlist(ctx, dto.AllCriteria(), false)
	if err != nil {
		s.log.ErrorContext(ctx, "Scheduled watchlist scan failed", logger.ErrorField(err))
		return
	}

	s.log.InfoContext(ctx, "Scheduled watchlist scan completed",
		logger.IntField("ticker_count", len(results)),
	)

	if s.notifier == nil || len(results) == 0 {
		return
	}
	if err := s.notifier.Send(ctx, buildScanSummary(results)); err != nil {
		s.log.ErrorContext(ctx, "Failed to send scan summary", logger.ErrorField(err))
	}
}

func buildScanSummary(results []dto.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*Watchlist scan: %d tickers*\n", len(results)))
	for _, r := range results {
		passing := 0
		for _, v := range r.Verdicts {
			if v.Status.Passing() {
				passing++
			}
		}

		glyph := dto.StatusFail.Glyph()
		if r.HasPassing() {
			glyph = dto.StatusPass.Glyph()
		}
		b.WriteString(fmt.Sprintf("%s *%s* %s (%d/%d criteria)\n",
			glyph, r.Ticker, r.FormattedPrice, passing, len(r.Verdicts)))
	}
	return b.String()
}
