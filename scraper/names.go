package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	rankAnnotation = regexp.MustCompile(`\(\d+\)`)
	multiSpace     = regexp.MustCompile(`\s+`)
	scorePair      = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)`)
	singleNumber   = regexp.MustCompile(`(\d+)`)
	parenDecimal   = regexp.MustCompile(`\((\d+\.?\d*)\)`)
	urlIDParam     = regexp.MustCompile(`[?&]id=([^&]+)`)

	stationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)board\s*#?\s*(\d+)`),
		regexp.MustCompile(`(?i)tarcza\s*#?\s*(\d+)`),
		regexp.MustCompile(`(?i)station\s*#?\s*(\d+)`),
		regexp.MustCompile(`(?i)stanowisko\s*#?\s*(\d+)`),
		regexp.MustCompile(`#(\d+)`),
		regexp.MustCompile(`^(\d+)$`),
	}
)

// CleanPlayerName trims the raw name, strips ranking annotations like "(12)"
// and collapses internal whitespace.
func CleanPlayerName(name string) string {
	name = rankAnnotation.ReplaceAllString(strings.TrimSpace(name), "")
	return strings.TrimSpace(multiSpace.ReplaceAllString(name, " "))
}

// MatchID builds the order-independent identifier for a pairing: both names
// lowercased and underscore-joined, sorted alphabetically, joined with "_vs_".
// MatchID(a, b) == MatchID(b, a) for every pair of names.
func MatchID(player1, player2 string) string {
	p1 := strings.ToLower(multiSpace.ReplaceAllString(strings.TrimSpace(player1), "_"))
	p2 := strings.ToLower(multiSpace.ReplaceAllString(strings.TrimSpace(player2), "_"))
	if p2 < p1 {
		p1, p2 = p2, p1
	}
	return p1 + "_vs_" + p2
}

// ParseScorePair reads "3 - 2" style text. A bare number counts for the
// first player; anything else parses as 0-0.
func ParseScorePair(text string) (int, int) {
	if m := scorePair.FindStringSubmatch(text); m != nil {
		s1, _ := strconv.Atoi(m[1])
		s2, _ := strconv.Atoi(m[2])
		return s1, s2
	}
	if m := singleNumber.FindStringSubmatch(text); m != nil {
		s1, _ := strconv.Atoi(m[1])
		return s1, 0
	}
	return 0, 0
}

// ParseStationNumber extracts a board number from free text. The source
// site labels boards in both Polish and English ("Tarcza 2", "Board 2"),
// and sometimes shows a bare "#2" or "2".
func ParseStationNumber(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, p := range stationPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return &n
		}
	}
	return nil
}

// parseParenDecimal reads an average annotation like "(45.67)".
func parseParenDecimal(text string) *float64 {
	if m := parenDecimal.FindStringSubmatch(text); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return &f
		}
	}
	return nil
}

// IsTournamentURL reports whether the URL points at the source site.
func IsTournamentURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.Contains(u.Hostname(), "n01darts.com")
}

// ExtractTournamentID pulls the value of the id query parameter out of a
// tournament URL. Returns "" when the URL carries none.
func ExtractTournamentID(rawURL string) string {
	if m := urlIDParam.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// StatsURL derives the statistics page address for a tournament URL.
func StatsURL(tournamentURL string) (string, error) {
	id := ExtractTournamentID(tournamentURL)
	if id == "" {
		return "", fmt.Errorf("cannot extract tournament id from url: %s", tournamentURL)
	}
	return "https://n01darts.com/n01/tournament/t_stats.html?id=" + id, nil
}
