package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dartcorner/liveboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScrapeService struct {
	result ScrapeResult
	err    error
	calls  int
}

func (s *stubScrapeService) ScrapeTournament(_ context.Context, _ *models.Tournament) (ScrapeResult, error) {
	s.calls++
	return s.result, s.err
}

type stubStatsService struct{}

func (s *stubStatsService) RefreshStats(_ context.Context, _ *models.Tournament) (int, error) {
	return 0, nil
}

func (s *stubStatsService) ListStats(_ context.Context, _ int) ([]models.TournamentStat, error) {
	return nil, nil
}

type fixedTournamentRepo struct {
	stubTournamentRepo
	active []models.Tournament
}

func (r *fixedTournamentRepo) ListActiveByDate(_ context.Context, _ time.Time) ([]models.Tournament, error) {
	return r.active, nil
}

func newTestPoller(scrape ScrapeService, repo *fixedTournamentRepo, stats *RunStats) *Poller {
	return NewPoller(
		PollerConfig{
			Interval:            10 * time.Millisecond,
			TournamentPause:     0,
			StatsReportInterval: time.Hour,
			StatsEveryCycles:    0,
		},
		repo, scrape, &stubStatsService{}, stats, discardLogger(),
	)
}

func TestPollerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poller := newTestPoller(&stubScrapeService{}, &fixedTournamentRepo{}, NewRunStats())
	err := poller.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollerRecordsSuccesses(t *testing.T) {
	scrape := &stubScrapeService{result: ScrapeResult{Matches: 4}}
	repo := &fixedTournamentRepo{active: []models.Tournament{
		{ID: 1, Name: "Liga", DartType: models.DartTypeSteel},
		{ID: 2, Name: "Puchar", DartType: models.DartTypeSoft},
	}}
	stats := NewRunStats()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = newTestPoller(scrape, repo, stats).Run(ctx)

	require.GreaterOrEqual(t, scrape.calls, 2)
	snap := stats.Snapshot()
	assert.Equal(t, snap.Attempts, snap.Successes)
	assert.Equal(t, 2, snap.ActiveTournaments)
	assert.Equal(t, snap.Successes*4, snap.ItemsFound)
}

func TestPollerIsolatesFailures(t *testing.T) {
	scrape := &stubScrapeService{err: errors.New("upstream unreachable")}
	repo := &fixedTournamentRepo{active: []models.Tournament{{ID: 1, Name: "Liga"}}}
	stats := NewRunStats()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := newTestPoller(scrape, repo, stats).Run(ctx)

	// The loop survives per-tournament failures and exits only on cancel.
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	snap := stats.Snapshot()
	assert.GreaterOrEqual(t, snap.Failures, 1)
	assert.Zero(t, snap.Successes)
}
