package scraper

import "github.com/dartcorner/liveboard/models"

// refereeSchemes maps group size to the fixed referee rotation used for
// steel round-robins: one (player position, player position, referee
// position) triple per match. The referee never plays in the match they
// call, and calls are spread across the roster.
var refereeSchemes = map[int][][3]int{
	3: {
		{1, 2, 3},
		{1, 3, 2},
		{2, 3, 1},
	},
	4: {
		{1, 2, 3},
		{3, 4, 2},
		{1, 3, 4},
		{2, 4, 1},
		{1, 4, 2},
		{2, 3, 1},
	},
	5: {
		{2, 5, 1},
		{3, 4, 1},
		{1, 3, 2},
		{4, 5, 2},
		{1, 5, 3},
		{2, 4, 3},
		{1, 2, 4},
		{3, 5, 4},
		{1, 4, 5},
		{2, 3, 5},
	},
	6: {
		{1, 6, 2},
		{2, 5, 3},
		{3, 4, 5},
		{2, 6, 4},
		{1, 3, 5},
		{4, 5, 1},
		{3, 6, 2},
		{2, 4, 6},
		{1, 5, 4},
		{4, 6, 3},
		{3, 5, 1},
		{1, 2, 6},
		{5, 6, 3},
		{1, 4, 5},
		{2, 3, 4},
	},
}

// RefereeScheme returns the rotation for a group size, or nil when the
// size has no published scheme (below 3 or above 6 players).
func RefereeScheme(size int) [][3]int {
	return refereeSchemes[size]
}

// refereePosition looks up the referee position for an unordered pair of
// player positions. Returns 0 when the scheme has no entry for the pair.
func refereePosition(size, posA, posB int) int {
	for _, triple := range refereeSchemes[size] {
		if (triple[0] == posA && triple[1] == posB) || (triple[0] == posB && triple[1] == posA) {
			return triple[2]
		}
	}
	return 0
}

// assignReferees fills in the referee for every group match from the fixed
// scheme for the roster size. Steel tournaments only; groups outside the
// 3-6 player range are left untouched.
func assignReferees(players models.GroupPlayerList, matches []models.GroupMatch) {
	if refereeSchemes[len(players)] == nil {
		return
	}
	byPosition := make(map[int]string, len(players))
	for _, p := range players {
		byPosition[p.Position] = p.Name
	}
	for i := range matches {
		pos := refereePosition(len(players), matches[i].Player1Position, matches[i].Player2Position)
		if pos == 0 {
			continue
		}
		if name, ok := byPosition[pos]; ok {
			matches[i].Referee = &name
		}
	}
}
