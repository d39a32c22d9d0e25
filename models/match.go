package models

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusActive   MatchStatus = "active"
	MatchStatusFinished MatchStatus = "finished"
	MatchStatusWalkover MatchStatus = "walkover"
)

// Match is a single-elimination bracket pairing. ExternalID is derived from
// the sorted pair of normalized player names, so re-scraping the same pairing
// always hits the same row regardless of which side each player appears on.
type Match struct {
	ID            int         `json:"id" db:"id"`
	TournamentID  int         `json:"tournament_id" db:"tournament_id"`
	ExternalID    string      `json:"external_id" db:"external_id"`
	Player1Name   string      `json:"player1_name" db:"player1_name"`
	Player2Name   string      `json:"player2_name" db:"player2_name"`
	Player1Score  int         `json:"player1_score" db:"player1_score"`
	Player2Score  int         `json:"player2_score" db:"player2_score"`
	StationNumber *int        `json:"station_number,omitempty" db:"station_number"`
	Referee       *string     `json:"referee,omitempty" db:"referee"`
	Status        MatchStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
