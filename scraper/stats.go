package scraper

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/models"
)

// tableStrategy is one named way of locating the stats table. Strategies
// are tried in order; the content heuristic runs only when every known
// selector misses. The stats page markup is the least stable part of the
// upstream site, so each strategy stays individually testable.
type tableStrategy struct {
	Name     string
	Selector string
}

var statsTableStrategies = []tableStrategy{
	{"stats-class", ".stats_table"},
	{"stats-id", "#stats_table"},
	{"table-stats-class", "table.stats"},
	{"tournament-stats-class", ".tournament_stats table"},
	{"tournament-stats-id", "#tournament_stats table"},
	{"t-stats-class", ".t_stats_table"},
	{"stats-class-substring", `table[class*="stats"]`},
	{"stats-id-substring", `table[id*="stats"]`},
}

// FindStatsTable locates the statistics table, returning the matched
// selection and the name of the strategy that found it. The fallback takes
// the first table with more than 5 rows.
func FindStatsTable(doc *goquery.Document) (*goquery.Selection, string) {
	for _, s := range statsTableStrategies {
		if sel := doc.Find(s.Selector).First(); sel.Length() > 0 {
			return sel, s.Name
		}
	}

	var fallback *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if table.Find("tr").Length() > 5 {
			fallback = table
			return false
		}
		return true
	})
	if fallback != nil {
		return fallback, "content-heuristic-fallback"
	}
	return nil, ""
}

// statColumns maps stat fields to column indexes; -1 means not found.
type statColumns struct {
	Rank          int
	Name          int
	MatchesPlayed int
	MatchesWon    int
	LegsPlayed    int
	LegsWon       int
	Scores100     int
	Scores140     int
	Scores180     int
	HighFinish    int
	BestLeg       int
	WorstLeg      int
	Avg3Darts     int
	AvgFirst9     int
	TotalScore    int
	TotalDarts    int
}

// header synonym catalog: header text varies between exports of the same
// page ("180's" vs "180", "3 darts average" vs "3da").
var statColumnSynonyms = map[string][]string{
	"rank":          {"#", "rank", "pos"},
	"name":          {"name", "player", "entry"},
	"matchesPlayed": {"matches played", "mp"},
	"matchesWon":    {"matches won", "mw"},
	"legsPlayed":    {"legs played", "lp"},
	"legsWon":       {"legs won", "lw"},
	"scores100":     {"100+"},
	"scores140":     {"140+"},
	"scores180":     {"180's", "180"},
	"highFinish":    {"high finish", "hf", "checkout"},
	"bestLeg":       {"best leg", "best", "min"},
	"worstLeg":      {"worst leg", "worst", "max"},
	"avg3Darts":     {"3 darts average", "3da", "3 dart"},
	"avgFirst9":     {"first 9 average", "first 9", "9da"},
	"totalScore":    {"total score"},
	"totalDarts":    {"total darts"},
}

func findColumn(headers []string, synonyms []string) int {
	for _, syn := range synonyms {
		for i, h := range headers {
			if h == syn || strings.Contains(h, syn) {
				return i
			}
		}
	}
	return -1
}

// MapStatColumns builds the column map from lowercased header texts.
func MapStatColumns(headers []string) statColumns {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	find := func(field string) int { return findColumn(lowered, statColumnSynonyms[field]) }

	return statColumns{
		Rank:          find("rank"),
		Name:          find("name"),
		MatchesPlayed: find("matchesPlayed"),
		MatchesWon:    find("matchesWon"),
		LegsPlayed:    find("legsPlayed"),
		LegsWon:       find("legsWon"),
		Scores100:     find("scores100"),
		Scores140:     find("scores140"),
		Scores180:     find("scores180"),
		HighFinish:    find("highFinish"),
		BestLeg:       find("bestLeg"),
		WorstLeg:      find("worstLeg"),
		Avg3Darts:     find("avg3Darts"),
		AvgFirst9:     find("avgFirst9"),
		TotalScore:    find("totalScore"),
		TotalDarts:    find("totalDarts"),
	}
}

func (c statColumns) unmapped() []string {
	fields := []struct {
		name string
		idx  int
	}{
		{"name", c.Name}, {"matches_played", c.MatchesPlayed}, {"matches_won", c.MatchesWon},
		{"legs_played", c.LegsPlayed}, {"legs_won", c.LegsWon}, {"100+", c.Scores100},
		{"140+", c.Scores140}, {"180", c.Scores180}, {"high_finish", c.HighFinish},
		{"best_leg", c.BestLeg}, {"worst_leg", c.WorstLeg}, {"avg_3_darts", c.Avg3Darts},
		{"avg_first_9", c.AvgFirst9}, {"total_score", c.TotalScore}, {"total_darts", c.TotalDarts},
	}
	var missing []string
	for _, f := range fields {
		if f.idx < 0 {
			missing = append(missing, f.name)
		}
	}
	return missing
}

var bareNumber = regexp.MustCompile(`^\d+$`)
var hasLetter = regexp.MustCompile(`[a-zA-Z]`)

// ParseStats extracts the per-player statistics table from the stats page.
// Degrades gracefully: a malformed or reordered header yields a best-effort
// (possibly empty) result, never an error. Unmappable columns are logged.
func ParseStats(doc *goquery.Document, logger *slog.Logger) []models.TournamentStat {
	table, strategy := FindStatsTable(doc)
	if table == nil {
		logger.Warn("no stats table found on page", slog.Int("tables", doc.Find("table").Length()))
		return nil
	}
	logger.Debug("stats table located", slog.String("strategy", strategy))

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		table.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(th.Text()))
		})
	}

	cols := MapStatColumns(headers)

	var sampleRow []string
	table.Find("tbody tr").First().Find("td").Each(func(_ int, td *goquery.Selection) {
		sampleRow = append(sampleRow, strings.TrimSpace(td.Text()))
	})

	// Header text failed us: find the name column by looking for the first
	// sample cell that contains letters and is not a bare number.
	if cols.Name < 0 {
		for i, text := range sampleRow {
			if text != "" && hasLetter.MatchString(text) && !bareNumber.MatchString(text) {
				cols.Name = i
				logger.Info("name column found by content", slog.Int("index", i), slog.String("sample", text))
				break
			}
		}
	}

	if missing := cols.unmapped(); len(missing) > 0 {
		logger.Warn("unmapped stat columns",
			slog.String("headers", strings.Join(headers, " | ")),
			slog.String("columns", strings.Join(missing, ",")))
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	var stats []models.TournamentStat
	seen := make(map[string]bool)

	rows.Each(func(_ int, row *goquery.Selection) {
		stat, ok := parseStatsRow(row, cols)
		if !ok || seen[stat.PlayerName] {
			return
		}
		seen[stat.PlayerName] = true
		stats = append(stats, stat)
	})

	return stats
}

func parseStatsRow(row *goquery.Selection, cols statColumns) (models.TournamentStat, bool) {
	var cells []string
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		text := strings.TrimSpace(td.Find("a").First().Text())
		if text == "" {
			text = strings.TrimSpace(td.Text())
		}
		cells = append(cells, text)
	})
	if len(cells) < 5 {
		return models.TournamentStat{}, false
	}

	cellAt := func(idx int) string {
		if idx < 0 || idx >= len(cells) {
			return ""
		}
		return cells[idx]
	}

	nameIdx := cols.Name
	if nameIdx < 0 {
		nameIdx = 1
	}
	name := cellAt(nameIdx)

	// Plausibility filters: too-short names, parenthesised annotations and
	// header-like sentinel rows are all noise from the rendered table.
	if len(name) < 2 || strings.Contains(name, "(") {
		return models.TournamentStat{}, false
	}
	if first := strings.ToLower(cellAt(0)); first == "#" || strings.Contains(first, "name") {
		return models.TournamentStat{}, false
	}

	return models.TournamentStat{
		PlayerName:    name,
		MatchesPlayed: statInt(cellAt(cols.MatchesPlayed)),
		MatchesWon:    statInt(cellAt(cols.MatchesWon)),
		LegsPlayed:    statInt(cellAt(cols.LegsPlayed)),
		LegsWon:       statInt(cellAt(cols.LegsWon)),
		Scores100Plus: statInt(cellAt(cols.Scores100)),
		Scores140Plus: statInt(cellAt(cols.Scores140)),
		Scores180:     statInt(cellAt(cols.Scores180)),
		HighFinish:    statInt(cellAt(cols.HighFinish)),
		BestLeg:       statInt(cellAt(cols.BestLeg)),
		WorstLeg:      statInt(cellAt(cols.WorstLeg)),
		Avg3Darts:     statFloat(cellAt(cols.Avg3Darts)),
		AvgFirst9:     statFloat(cellAt(cols.AvgFirst9)),
		TotalScore:    statInt(cellAt(cols.TotalScore)),
		TotalDarts:    statInt(cellAt(cols.TotalDarts)),
	}, true
}

var nonDigit = regexp.MustCompile(`[^\d-]`)

// statInt parses an integer cell; empty and "-" cells are null.
func statInt(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return nil
	}
	n, err := strconv.Atoi(nonDigit.ReplaceAllString(text, ""))
	if err != nil {
		return nil
	}
	return &n
}

// statFloat parses a decimal cell, accepting comma decimal separators.
func statFloat(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}
