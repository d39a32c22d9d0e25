package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dartcorner/liveboard/live"
	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
	"github.com/dartcorner/liveboard/scraper"
)

// StatsService runs the statistics pipeline: a separate page of the
// upstream site, scraped independently of the bracket/group pipeline.
type StatsService interface {
	RefreshStats(ctx context.Context, t *models.Tournament) (int, error)
	ListStats(ctx context.Context, tournamentID int) ([]models.TournamentStat, error)
}

type statsService struct {
	fetcher  PageFetcher
	statRepo repositories.StatRepository
	hub      *live.Hub
	logger   *slog.Logger
}

func NewStatsService(fetcher PageFetcher, statRepo repositories.StatRepository, hub *live.Hub, logger *slog.Logger) StatsService {
	return &statsService{fetcher: fetcher, statRepo: statRepo, hub: hub, logger: logger}
}

// RefreshStats scrapes the tournament's statistics page and overwrites the
// stored snapshot. Only steel tournaments publish one.
func (s *statsService) RefreshStats(ctx context.Context, t *models.Tournament) (int, error) {
	if t.DartType != models.DartTypeSteel {
		return 0, ErrStatsUnavailable
	}

	doc, err := s.fetcher.FetchStatsPage(ctx, t.SourceURL)
	if err != nil {
		return 0, fmt.Errorf("stats fetch failed for tournament %d: %w", t.ID, err)
	}

	stats := scraper.ParseStats(doc, s.logger)
	if len(stats) == 0 {
		s.logger.Warn("stats page yielded no rows", slog.Int("tournament_id", t.ID))
		return 0, nil
	}

	if err := s.statRepo.UpsertBatch(ctx, nil, t.ID, stats); err != nil {
		return 0, err
	}

	s.logger.Info("tournament stats refreshed",
		slog.Int("tournament_id", t.ID),
		slog.Int("players", len(stats)))

	if s.hub != nil {
		s.hub.BroadcastTournamentUpdate(t.ID, live.EventStatsUpdated, map[string]int{"players": len(stats)})
	}
	return len(stats), nil
}

func (s *statsService) ListStats(ctx context.Context, tournamentID int) ([]models.TournamentStat, error) {
	return s.statRepo.ListByTournament(ctx, tournamentID)
}
