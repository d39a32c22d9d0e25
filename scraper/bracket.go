package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/models"
)

// BracketEntry is one raw .t_item_container row before normalization.
type BracketEntry struct {
	Player1Name  string
	Player2Name  string
	Player1Score string
	Player2Score string
	BoardText    string
	Referee      string
	LegsAttr     string
}

// CollectBracketEntries walks the rendered knockout view and pulls out the
// raw per-match signals. No filtering happens here; entries with missing
// players are dropped later so the raw view stays inspectable in tests.
func CollectBracketEntries(doc *goquery.Document) []BracketEntry {
	var entries []BracketEntry

	doc.Find(".t_item_container").Each(func(_ int, sel *goquery.Selection) {
		entry := BracketEntry{
			Player1Name:  strings.TrimSpace(sel.Find(".t_item.left .entry_name").First().Text()),
			Player1Score: strings.TrimSpace(sel.Find(".t_item.left .t_result").First().Text()),
			Player2Name:  strings.TrimSpace(sel.Find(".t_item.right .entry_name").First().Text()),
			Player2Score: strings.TrimSpace(sel.Find(".t_item.right .t_result").First().Text()),
			BoardText:    strings.TrimSpace(sel.Find(".badge-text").First().Text()),
			LegsAttr:     sel.Find(".t_item.left").First().AttrOr("legs", ""),
		}

		// Referee memo sits next to the container, not inside it.
		memo := sel.Parent().Find(".t_memo").First()
		if memo.Length() == 0 {
			memo = sel.Closest("td").Find(".t_memo").First()
		}
		entry.Referee = strings.TrimSpace(memo.Text())

		entries = append(entries, entry)
	})

	return entries
}

// ParseBracket turns the fetched DOM into normalized bracket matches.
// Entries missing either player are skipped; duplicate pairings collapse
// first-wins by match id. defaultLegsToWin applies when the page carries
// no legs attribute.
func ParseBracket(doc *goquery.Document, defaultLegsToWin int) []models.Match {
	entries := CollectBracketEntries(doc)

	var matches []models.Match
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		p1 := CleanPlayerName(e.Player1Name)
		p2 := CleanPlayerName(e.Player2Name)
		if p1 == "" || p2 == "" {
			continue
		}

		s1, _ := strconv.Atoi(strings.TrimSpace(e.Player1Score))
		s2, _ := strconv.Atoi(strings.TrimSpace(e.Player2Score))

		legsToWin := defaultLegsToWin
		if n, err := strconv.Atoi(strings.TrimSpace(e.LegsAttr)); err == nil && n > 0 {
			legsToWin = n
		}

		station := ParseStationNumber(e.BoardText)

		id := MatchID(p1, p2)
		if seen[id] {
			continue
		}
		seen[id] = true

		m := models.Match{
			ExternalID:    id,
			Player1Name:   p1,
			Player2Name:   p2,
			Player1Score:  s1,
			Player2Score:  s2,
			StationNumber: station,
			Status: ClassifyMatch(MatchSignals{
				Player1Name:   p1,
				Player2Name:   p2,
				Player1Score:  s1,
				Player2Score:  s2,
				StationNumber: station,
				LegsToWin:     legsToWin,
			}),
		}
		if ref := strings.TrimSpace(e.Referee); ref != "" {
			m.Referee = &ref
		}

		matches = append(matches, m)
	}

	return matches
}
