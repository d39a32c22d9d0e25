package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
	"github.com/dartcorner/liveboard/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func snapshotFromHTML(t *testing.T, html string) *scraper.PageSnapshot {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return &scraper.PageSnapshot{
		URL:        "https://n01darts.com/n01/tournament/t.html?id=t_test",
		Doc:        doc,
		HasBracket: doc.Find(".t_item_container").Length() > 0,
		HasGroups:  doc.Find(".rr_table_container").Length() > 0,
	}
}

type stubFetcher struct {
	snapshot *scraper.PageSnapshot
	statsDoc *goquery.Document
	err      error
}

func (f *stubFetcher) FetchTournamentPage(_ context.Context, _ string) (*scraper.PageSnapshot, error) {
	return f.snapshot, f.err
}

func (f *stubFetcher) FetchStatsPage(_ context.Context, _ string) (*goquery.Document, error) {
	return f.statsDoc, f.err
}

type stubMatchRepo struct {
	upserted   []models.Match
	presentIDs []string
	finished   int64
	finishRan  bool
}

func (r *stubMatchRepo) UpsertBatch(_ context.Context, _ repositories.SQLExecutor, _ int, matches []models.Match) error {
	r.upserted = append(r.upserted, matches...)
	return nil
}

func (r *stubMatchRepo) FinishMissing(_ context.Context, _ repositories.SQLExecutor, _ int, presentIDs []string) (int64, error) {
	r.finishRan = true
	r.presentIDs = presentIDs
	return r.finished, nil
}

func (r *stubMatchRepo) ListByTournament(_ context.Context, _ int) ([]models.Match, error) {
	return nil, nil
}

type stubGroupRepo struct {
	upserted []models.Group
}

func (r *stubGroupRepo) UpsertBatch(_ context.Context, _ repositories.SQLExecutor, tournamentID int, groups []models.Group) ([]models.Group, error) {
	saved := make([]models.Group, len(groups))
	copy(saved, groups)
	for i := range saved {
		saved[i].ID = 100 + saved[i].GroupNumber
		saved[i].TournamentID = tournamentID
	}
	r.upserted = append(r.upserted, saved...)
	return saved, nil
}

func (r *stubGroupRepo) ListByTournament(_ context.Context, _ int) ([]models.Group, error) {
	return nil, nil
}

type stubGroupMatchRepo struct {
	byGroupID map[int][]models.GroupMatch
}

func (r *stubGroupMatchRepo) UpsertBatch(_ context.Context, _ repositories.SQLExecutor, groupID, _ int, matches []models.GroupMatch) error {
	if r.byGroupID == nil {
		r.byGroupID = make(map[int][]models.GroupMatch)
	}
	r.byGroupID[groupID] = append(r.byGroupID[groupID], matches...)
	return nil
}

func (r *stubGroupMatchRepo) ListByGroup(_ context.Context, _ int) ([]models.GroupMatch, error) {
	return nil, nil
}

const bracketPage = `
<div class="t_item_container">
  <div class="t_item left" legs="3"><span class="entry_name">Jan Kowalski</span><span class="t_result">3</span></div>
  <div class="t_item right"><span class="entry_name">Adam Nowak</span><span class="t_result">1</span></div>
</div>
<div class="t_item_container">
  <div class="t_item left"><span class="entry_name">Marek Zielinski</span><span class="t_result">0</span></div>
  <div class="t_item right"><span class="entry_name">Tomasz Lewandowski</span><span class="t_result">0</span></div>
</div>`

const groupPage = `
<div class="rr_table_container">
  <div class="rr_table">
    <div class="rr_body">
      <div class="rr_player">
        <div class="rr_name"><span class="entry_name">Alicja Kowalska</span></div>
        <div class="rr_result rr_none"></div>
        <div class="rr_result fix_game">3 - 0</div>
      </div>
      <div class="rr_player">
        <div class="rr_name"><span class="entry_name">Robert Nowak</span></div>
        <div class="rr_result"></div>
        <div class="rr_result rr_none"></div>
      </div>
    </div>
  </div>
</div>`

func newTestScrapeService(fetcher PageFetcher, matchRepo repositories.MatchRepository, groupRepo repositories.GroupRepository, groupMatchRepo repositories.GroupMatchRepository) ScrapeService {
	return NewScrapeService(fetcher, matchRepo, groupRepo, groupMatchRepo, nil, 0, discardLogger())
}

func TestScrapeTournamentReconcilesBracket(t *testing.T) {
	matchRepo := &stubMatchRepo{}
	svc := newTestScrapeService(
		&stubFetcher{snapshot: snapshotFromHTML(t, bracketPage)},
		matchRepo, &stubGroupRepo{}, &stubGroupMatchRepo{},
	)

	tournament := &models.Tournament{ID: 7, Format: models.FormatSingleKO, DartType: models.DartTypeSteel}
	result, err := svc.ScrapeTournament(context.Background(), tournament)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Matches)
	assert.Equal(t, 0, result.Groups)
	require.Len(t, matchRepo.upserted, 2)
	assert.Equal(t, models.MatchStatusFinished, matchRepo.upserted[0].Status)

	// Finalization runs with the scraped ids.
	require.True(t, matchRepo.finishRan)
	assert.ElementsMatch(t, []string{
		scraper.MatchID("Jan Kowalski", "Adam Nowak"),
		scraper.MatchID("Marek Zielinski", "Tomasz Lewandowski"),
	}, matchRepo.presentIDs)
}

func TestScrapeTournamentIdempotent(t *testing.T) {
	matchRepo := &stubMatchRepo{}
	svc := newTestScrapeService(
		&stubFetcher{snapshot: snapshotFromHTML(t, bracketPage)},
		matchRepo, &stubGroupRepo{}, &stubGroupMatchRepo{},
	)

	tournament := &models.Tournament{ID: 7}
	first, err := svc.ScrapeTournament(context.Background(), tournament)
	require.NoError(t, err)
	second, err := svc.ScrapeTournament(context.Background(), tournament)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Both passes upsert the same external ids.
	require.Len(t, matchRepo.upserted, 4)
	assert.Equal(t, matchRepo.upserted[0].ExternalID, matchRepo.upserted[2].ExternalID)
}

func TestScrapeTournamentEmptyPageSkipsFinalization(t *testing.T) {
	matchRepo := &stubMatchRepo{}
	svc := newTestScrapeService(
		&stubFetcher{snapshot: snapshotFromHTML(t, "<html><body></body></html>")},
		matchRepo, &stubGroupRepo{}, &stubGroupMatchRepo{},
	)

	result, err := svc.ScrapeTournament(context.Background(), &models.Tournament{ID: 7})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Matches)
	assert.Empty(t, matchRepo.upserted)
	// A transient empty fetch must not mass-finish the tournament.
	assert.False(t, matchRepo.finishRan)
}

func TestScrapeTournamentReconcilesGroups(t *testing.T) {
	groupRepo := &stubGroupRepo{}
	groupMatchRepo := &stubGroupMatchRepo{}
	svc := newTestScrapeService(
		&stubFetcher{snapshot: snapshotFromHTML(t, groupPage)},
		&stubMatchRepo{}, groupRepo, groupMatchRepo,
	)

	tournament := &models.Tournament{ID: 9, Format: models.FormatGroupsKO, DartType: models.DartTypeSteel}
	result, err := svc.ScrapeTournament(context.Background(), tournament)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 1, result.GroupMatches)

	// Group matches land under the id assigned by the group upsert.
	require.Len(t, groupRepo.upserted, 1)
	groupID := groupRepo.upserted[0].ID
	assert.Equal(t, 101, groupID)
	require.Len(t, groupMatchRepo.byGroupID[groupID], 1)
	assert.Equal(t, models.MatchStatusFinished, groupMatchRepo.byGroupID[groupID][0].Status)
}
