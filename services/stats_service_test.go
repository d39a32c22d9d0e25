package services

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatRepo struct {
	upserted []models.TournamentStat
	listed   []models.TournamentStat
}

func (r *stubStatRepo) UpsertBatch(_ context.Context, _ repositories.SQLExecutor, _ int, stats []models.TournamentStat) error {
	r.upserted = append(r.upserted, stats...)
	return nil
}

func (r *stubStatRepo) ListByTournament(_ context.Context, _ int) ([]models.TournamentStat, error) {
	return r.listed, nil
}

const statsPage = `
<table class="stats_table">
  <thead><tr><th>#</th><th>Name</th><th>MP</th><th>MW</th><th>3DA</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>Jan Kowalski</td><td>5</td><td>4</td><td>61.45</td></tr>
    <tr><td>2</td><td>Adam Nowak</td><td>5</td><td>3</td><td>55.10</td></tr>
  </tbody>
</table>`

func statsDocFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRefreshStats(t *testing.T) {
	t.Run("steel tournament stored", func(t *testing.T) {
		statRepo := &stubStatRepo{}
		svc := NewStatsService(&stubFetcher{statsDoc: statsDocFromHTML(t, statsPage)}, statRepo, nil, discardLogger())

		players, err := svc.RefreshStats(context.Background(), &models.Tournament{ID: 7, DartType: models.DartTypeSteel})
		require.NoError(t, err)

		assert.Equal(t, 2, players)
		require.Len(t, statRepo.upserted, 2)
		assert.Equal(t, "Jan Kowalski", statRepo.upserted[0].PlayerName)
	})

	t.Run("soft tournament refused", func(t *testing.T) {
		svc := NewStatsService(&stubFetcher{}, &stubStatRepo{}, nil, discardLogger())

		_, err := svc.RefreshStats(context.Background(), &models.Tournament{ID: 7, DartType: models.DartTypeSoft})
		assert.ErrorIs(t, err, ErrStatsUnavailable)
	})

	t.Run("empty page stores nothing", func(t *testing.T) {
		statRepo := &stubStatRepo{}
		svc := NewStatsService(&stubFetcher{statsDoc: statsDocFromHTML(t, "<div></div>")}, statRepo, nil, discardLogger())

		players, err := svc.RefreshStats(context.Background(), &models.Tournament{ID: 7, DartType: models.DartTypeSteel})
		require.NoError(t, err)
		assert.Zero(t, players)
		assert.Empty(t, statRepo.upserted)
	})
}
