package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/live"
	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
	"github.com/dartcorner/liveboard/scraper"
)

// PageFetcher is the browser-backed page loader. An interface here keeps
// the reconciler testable against canned documents.
type PageFetcher interface {
	FetchTournamentPage(ctx context.Context, url string) (*scraper.PageSnapshot, error)
	FetchStatsPage(ctx context.Context, tournamentURL string) (*goquery.Document, error)
}

// ScrapeResult summarises one tournament's scrape-reconcile pass.
type ScrapeResult struct {
	Matches      int
	Groups       int
	GroupMatches int
}

func (r ScrapeResult) TotalItems() int {
	return r.Matches + r.GroupMatches
}

type ScrapeService interface {
	// ScrapeTournament runs the full fetch-parse-reconcile pipeline for
	// one tournament. Persistence failures propagate to the caller; the
	// poller isolates them per tournament.
	ScrapeTournament(ctx context.Context, t *models.Tournament) (ScrapeResult, error)
}

type scrapeService struct {
	fetcher          PageFetcher
	matchRepo        repositories.MatchRepository
	groupRepo        repositories.GroupRepository
	groupMatchRepo   repositories.GroupMatchRepository
	hub              *live.Hub
	defaultLegsToWin int
	logger           *slog.Logger
}

func NewScrapeService(
	fetcher PageFetcher,
	matchRepo repositories.MatchRepository,
	groupRepo repositories.GroupRepository,
	groupMatchRepo repositories.GroupMatchRepository,
	hub *live.Hub,
	defaultLegsToWin int,
	logger *slog.Logger,
) ScrapeService {
	return &scrapeService{
		fetcher:          fetcher,
		matchRepo:        matchRepo,
		groupRepo:        groupRepo,
		groupMatchRepo:   groupMatchRepo,
		hub:              hub,
		defaultLegsToWin: defaultLegsToWin,
		logger:           logger,
	}
}

func (s *scrapeService) ScrapeTournament(ctx context.Context, t *models.Tournament) (ScrapeResult, error) {
	var result ScrapeResult

	snapshot, err := s.fetcher.FetchTournamentPage(ctx, t.SourceURL)
	if err != nil {
		return result, fmt.Errorf("fetch failed for tournament %d: %w", t.ID, err)
	}

	matches := scraper.ParseBracket(snapshot.Doc, s.defaultLegsToWin)
	if err := s.reconcileMatches(ctx, t.ID, matches); err != nil {
		return result, err
	}
	result.Matches = len(matches)

	if snapshot.HasGroups || t.Format == models.FormatGroupsKO {
		groups := scraper.ParseGroups(snapshot.Doc, t.DartType == models.DartTypeSteel)
		groupMatches, err := s.reconcileGroups(ctx, t.ID, groups)
		if err != nil {
			return result, err
		}
		result.Groups = len(groups)
		result.GroupMatches = groupMatches
	}

	s.logger.Info("tournament reconciled",
		slog.Int("tournament_id", t.ID),
		slog.Int("matches", result.Matches),
		slog.Int("groups", result.Groups),
		slog.Int("group_matches", result.GroupMatches))

	if s.hub != nil && result.TotalItems() > 0 {
		s.hub.BroadcastTournamentUpdate(t.ID, live.EventMatchesUpdated, result)
	}

	return result, nil
}

// reconcileMatches upserts the bracket snapshot and finalizes matches that
// vanished from it. Finalization is skipped when the scrape produced no
// ids, so a transient empty fetch cannot mass-finish a tournament.
func (s *scrapeService) reconcileMatches(ctx context.Context, tournamentID int, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	if err := s.matchRepo.UpsertBatch(ctx, nil, tournamentID, matches); err != nil {
		return err
	}

	presentIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		presentIDs = append(presentIDs, m.ExternalID)
	}

	finished, err := s.matchRepo.FinishMissing(ctx, nil, tournamentID, presentIDs)
	if err != nil {
		return err
	}
	if finished > 0 {
		s.logger.Info("finalized matches missing from scrape",
			slog.Int("tournament_id", tournamentID),
			slog.Int64("count", finished))
	}
	return nil
}

// reconcileGroups is two-phase: groups are upserted first to obtain their
// storage ids, then each group's matches are upserted against that id.
func (s *scrapeService) reconcileGroups(ctx context.Context, tournamentID int, groups []scraper.ScrapedGroup) (int, error) {
	if len(groups) == 0 {
		return 0, nil
	}

	parsed := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		parsed = append(parsed, g.Group)
	}

	saved, err := s.groupRepo.UpsertBatch(ctx, nil, tournamentID, parsed)
	if err != nil {
		return 0, err
	}

	byNumber := make(map[int]int, len(saved))
	for _, g := range saved {
		byNumber[g.GroupNumber] = g.ID
	}

	total := 0
	for _, g := range groups {
		groupID, ok := byNumber[g.Group.GroupNumber]
		if !ok || len(g.Matches) == 0 {
			continue
		}
		if err := s.groupMatchRepo.UpsertBatch(ctx, nil, groupID, tournamentID, g.Matches); err != nil {
			return total, err
		}
		total += len(g.Matches)
	}
	return total, nil
}
