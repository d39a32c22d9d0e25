package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dartcorner/liveboard/models"
)

var (
	groupStationPattern = regexp.MustCompile(`(?i)(?:tarcza|board)\s*(\d+)`)
	winLossPattern      = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
)

// ScrapedGroup is one parsed round-robin table together with its matches.
// Match GroupID fields stay zero until the group row is persisted.
type ScrapedGroup struct {
	Group   models.Group
	Matches []models.GroupMatch
}

// ParseGroups extracts every round-robin table from the fetched DOM.
// steel controls referee assignment: soft tournaments get none.
func ParseGroups(doc *goquery.Document, steel bool) []ScrapedGroup {
	var groups []ScrapedGroup

	doc.Find(".rr_table_container").Each(func(groupIndex int, container *goquery.Selection) {
		table := container.Find(".rr_table").First()
		if table.Length() == 0 {
			return
		}

		g := parseGroupTable(container, table, groupIndex)
		if steel {
			assignReferees(g.Group.Players, g.Matches)
		}
		groups = append(groups, g)
	})

	return groups
}

func parseGroupTable(container, table *goquery.Selection, groupIndex int) ScrapedGroup {
	group := models.Group{
		GroupNumber: groupIndex + 1,
		Name:        fmt.Sprintf("Group %d", groupIndex+1),
	}

	// The source stores the group name as a subtitle attribute on the
	// first result cell rather than in a heading.
	if subtitle, ok := table.Find(".rr_result[subtitle]").First().Attr("subtitle"); ok && strings.TrimSpace(subtitle) != "" {
		group.Name = strings.TrimSpace(subtitle)
	}

	if memo := strings.TrimSpace(container.Find(".rr_memo").First().Text()); memo != "" {
		group.MemoText = &memo
		if m := groupStationPattern.FindStringSubmatch(memo); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				group.StationNumber = &n
			}
		}
	}

	playerRows := table.Find(".rr_body .rr_player")
	group.Players = parseGroupPlayers(playerRows)

	matches := parseGroupMatches(playerRows, group.Players)

	group.TotalMatches = len(group.Players) * (len(group.Players) - 1) / 2
	for _, m := range matches {
		if m.Status == models.MatchStatusFinished {
			group.CompletedMatches++
		}
	}
	group.Status = classifyGroup(group.TotalMatches, group.CompletedMatches, matches)

	return ScrapedGroup{Group: group, Matches: matches}
}

func parseGroupPlayers(rows *goquery.Selection) models.GroupPlayerList {
	var players models.GroupPlayerList

	rows.Each(func(rowIndex int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find(".rr_name .entry_name").First().Text())
		if name == "" {
			return
		}

		p := models.GroupPlayer{
			Name:     name,
			Position: rowIndex + 1,
			Rank:     rowIndex + 1,
		}

		if tpid, ok := row.Find(".rr_name[tpid]").First().Attr("tpid"); ok && tpid != "" {
			p.ExternalID = &tpid
		}
		if rank, err := strconv.Atoi(strings.TrimSpace(row.Find(".rr_rank").First().Text())); err == nil && rank > 0 {
			p.Rank = rank
		}
		if m := winLossPattern.FindStringSubmatch(row.Find(".rr_win").First().Text()); m != nil {
			p.Wins, _ = strconv.Atoi(m[1])
			p.Losses, _ = strconv.Atoi(m[2])
		}
		if m := winLossPattern.FindStringSubmatch(row.Find(".rr_leg").First().Text()); m != nil {
			p.LegsWon, _ = strconv.Atoi(m[1])
			p.LegsLost, _ = strconv.Atoi(m[2])
		}
		p.Average = parseParenDecimal(row.Find(".t_avg").First().Text())

		players = append(players, p)
	})

	return players
}

// parseGroupMatches walks the cells strictly above the diagonal of the
// pairwise result matrix, so each unordered pair is visited once. Cells
// sharing an effective order key (explicit rr_idx, else the sorted name
// pair) collapse first-wins; the upstream matrix occasionally repeats a
// pairing through symmetric cells.
func parseGroupMatches(rows *goquery.Selection, players models.GroupPlayerList) []models.GroupMatch {
	byPosition := make(map[int]models.GroupPlayer, len(players))
	for _, p := range players {
		byPosition[p.Position] = p
	}

	var matches []models.GroupMatch
	seen := make(map[string]bool)

	rows.Each(func(rowIndex int, row *goquery.Selection) {
		row.Find(".rr_result").Each(func(colIndex int, cell *goquery.Selection) {
			if cell.HasClass("rr_none") || colIndex <= rowIndex {
				return
			}

			p1, ok1 := byPosition[rowIndex+1]
			p2, ok2 := byPosition[colIndex+1]
			if !ok1 || !ok2 {
				return
			}

			s1, s2 := ParseScorePair(cellScoreText(cell))

			m := models.GroupMatch{
				Player1Name:       p1.Name,
				Player2Name:       p2.Name,
				Player1ExternalID: p1.ExternalID,
				Player2ExternalID: p2.ExternalID,
				Player1Score:      s1,
				Player2Score:      s2,
				Player1Position:   p1.Position,
				Player2Position:   p2.Position,
				Average:           parseParenDecimal(cell.Find(".r_avg").First().Text()),
				Status:            classifyGroupCell(cell),
			}

			key := "pair:" + MatchID(p1.Name, p2.Name)
			if idx, err := strconv.Atoi(strings.TrimSpace(cell.Find(".rr_idx").First().Text())); err == nil && idx > 0 {
				m.MatchOrder = idx
				key = "order:" + strconv.Itoa(idx)
			}
			if seen[key] {
				return
			}
			seen[key] = true

			matches = append(matches, m)
		})
	})

	// Cells without an explicit order index fall back to their discovery
	// position, keeping the (group, order) key stable across re-scrapes.
	// Orders already claimed by explicit rr_idx cells are skipped over.
	used := make(map[int]bool, len(matches))
	for _, m := range matches {
		used[m.MatchOrder] = true
	}
	next := 1
	for i := range matches {
		if matches[i].MatchOrder != 0 {
			continue
		}
		for used[next] {
			next++
		}
		matches[i].MatchOrder = next
		used[next] = true
	}

	return matches
}

// cellScoreText strips the embedded average and order-index annotations so
// "3 - 1 (52.3)" parses as a plain score pair.
func cellScoreText(cell *goquery.Selection) string {
	text := strings.TrimSpace(cell.Text())
	if avg := strings.TrimSpace(cell.Find(".r_avg").First().Text()); avg != "" {
		text = strings.ReplaceAll(text, avg, "")
	}
	if idx := strings.TrimSpace(cell.Find(".rr_idx").First().Text()); idx != "" {
		text = strings.Replace(text, idx, "", 1)
	}
	return text
}

// classifyGroupCell reads the per-cell status markers: the fix_game class
// marks a completed result, an inline background highlight marks the match
// currently on the board.
func classifyGroupCell(cell *goquery.Selection) models.MatchStatus {
	if cell.HasClass("fix_game") {
		return models.MatchStatusFinished
	}
	if style, ok := cell.Attr("style"); ok && strings.Contains(strings.ToLower(style), "background") {
		return models.MatchStatusActive
	}
	return models.MatchStatusPending
}

func classifyGroup(total, completed int, matches []models.GroupMatch) models.GroupStatus {
	if total > 0 && completed == total {
		return models.GroupStatusFinished
	}
	for _, m := range matches {
		if m.Status == models.MatchStatusActive {
			return models.GroupStatusActive
		}
	}
	if completed > 0 {
		return models.GroupStatusActive
	}
	return models.GroupStatusPending
}
