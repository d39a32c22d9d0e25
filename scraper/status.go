package scraper

import (
	"regexp"

	"github.com/dartcorner/liveboard/models"
)

var walkoverPattern = regexp.MustCompile(`(?i)\b(wo|w/o|walkover)\b`)

// MatchSignals are the raw per-match signals the classifier operates on.
// LegsToWin <= 0 means the legs threshold is unknown, in which case a match
// is never classified finished from its score alone.
type MatchSignals struct {
	Player1Name   string
	Player2Name   string
	Player1Score  int
	Player2Score  int
	StationNumber *int
	LegsToWin     int
}

// ClassifyMatch turns raw signals into a match status. Precedence, first
// match wins:
//
//  1. either player name matches a walkover pattern -> walkover
//  2. a station is assigned and the score is below the legs threshold -> active
//  3. the score has reached the legs threshold -> finished
//  4. otherwise -> pending
//
// Pure function: equal inputs always yield equal statuses.
func ClassifyMatch(s MatchSignals) models.MatchStatus {
	if walkoverPattern.MatchString(s.Player1Name) || walkoverPattern.MatchString(s.Player2Name) {
		return models.MatchStatusWalkover
	}

	finished := s.LegsToWin > 0 &&
		(s.Player1Score >= s.LegsToWin || s.Player2Score >= s.LegsToWin)

	if s.StationNumber != nil && *s.StationNumber > 0 && !finished {
		return models.MatchStatusActive
	}
	if finished {
		return models.MatchStatusFinished
	}
	return models.MatchStatusPending
}
