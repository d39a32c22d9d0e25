package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
)

// PollerConfig carries the scheduling knobs for the scrape loop.
type PollerConfig struct {
	// Interval between full scrape cycles.
	Interval time.Duration
	// Pause between tournaments within one cycle, to avoid hammering
	// the upstream site.
	TournamentPause time.Duration
	// How often the aggregate run statistics are logged.
	StatsReportInterval time.Duration
	// Refresh tournament stats every N cycles (steel tournaments only).
	// 0 disables the stats pipeline in the loop.
	StatsEveryCycles int
}

// Poller iterates the day's active tournaments on a fixed interval,
// scraping them strictly sequentially. Per-tournament failures are logged
// and counted without aborting the cycle; cancellation is honoured at the
// top of each cycle and between tournaments.
type Poller struct {
	cfg            PollerConfig
	tournamentRepo repositories.TournamentRepository
	scrapeService  ScrapeService
	statsService   StatsService
	stats          *RunStats
	logger         *slog.Logger
}

func NewPoller(
	cfg PollerConfig,
	tournamentRepo repositories.TournamentRepository,
	scrapeService ScrapeService,
	statsService StatsService,
	stats *RunStats,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		cfg:            cfg,
		tournamentRepo: tournamentRepo,
		scrapeService:  scrapeService,
		statsService:   statsService,
		stats:          stats,
		logger:         logger,
	}
}

// Run blocks until ctx is cancelled. The current tournament's scrape is
// allowed to finish before the loop exits.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller starting",
		slog.Duration("interval", p.cfg.Interval),
		slog.Duration("tournament_pause", p.cfg.TournamentPause))

	reportTicker := time.NewTicker(p.cfg.StatsReportInterval)
	defer reportTicker.Stop()

	cycle := 0
	for {
		select {
		case <-ctx.Done():
			p.stats.LogSummary(p.logger)
			p.logger.Info("poller stopped")
			return ctx.Err()
		case <-reportTicker.C:
			p.stats.LogSummary(p.logger)
		default:
		}

		cycle++
		p.runCycle(ctx, cycle)

		if !sleepCtx(ctx, p.cfg.Interval) {
			continue // cancelled; loop once more to hit the ctx.Done branch
		}
	}
}

func (p *Poller) runCycle(ctx context.Context, cycle int) {
	today := time.Now()
	p.logger.Info("starting scrape cycle",
		slog.Int("cycle", cycle),
		slog.String("date", today.Format("2006-01-02")))

	tournaments, err := p.tournamentRepo.ListActiveByDate(ctx, today)
	if err != nil {
		p.logger.Error("failed to list active tournaments", slog.Any("error", err))
		return
	}
	if len(tournaments) == 0 {
		p.logger.Info("no active tournaments for today")
		return
	}

	withStats := p.cfg.StatsEveryCycles > 0 && cycle%p.cfg.StatsEveryCycles == 0

	for i := range tournaments {
		if ctx.Err() != nil {
			return
		}
		t := &tournaments[i]
		p.scrapeOne(ctx, t, withStats)

		if i < len(tournaments)-1 && !sleepCtx(ctx, p.cfg.TournamentPause) {
			return
		}
	}
}

// scrapeOne isolates one tournament's scrape: errors and panics are
// recorded as a failed attempt and the cycle continues.
func (p *Poller) scrapeOne(ctx context.Context, t *models.Tournament, withStats bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while scraping tournament",
				slog.Int("tournament_id", t.ID),
				slog.Any("panic", r))
			p.stats.RecordScrape(t.ID, false, 0)
		}
	}()

	p.logger.Info("scraping tournament",
		slog.Int("tournament_id", t.ID),
		slog.String("name", t.Name),
		slog.String("url", t.SourceURL))

	result, err := p.scrapeService.ScrapeTournament(ctx, t)
	if err != nil {
		p.logger.Error("scrape failed",
			slog.Int("tournament_id", t.ID),
			slog.Any("error", err))
		p.stats.RecordScrape(t.ID, false, 0)
		return
	}
	p.stats.RecordScrape(t.ID, true, result.TotalItems())

	if withStats && t.DartType == models.DartTypeSteel {
		if _, err := p.statsService.RefreshStats(ctx, t); err != nil {
			// Stats are best-effort: a failure here does not mark the
			// tournament's scrape as failed.
			p.logger.Warn("stats refresh failed",
				slog.Int("tournament_id", t.ID),
				slog.Any("error", err))
		}
	}
}

// sleepCtx waits for d or until ctx is cancelled. Returns false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Stats exposes the aggregate counters for the API layer.
func (p *Poller) Stats() RunStatsSnapshot {
	return p.stats.Snapshot()
}
