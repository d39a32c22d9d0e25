package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type GroupStatus string

const (
	GroupStatusPending  GroupStatus = "pending"
	GroupStatusActive   GroupStatus = "active"
	GroupStatusFinished GroupStatus = "finished"
)

// GroupPlayer is one roster row of a round-robin table, in table order.
// Position is the 1-based row position and is what the referee scheme
// operates on; Rank is the standing shown by the source site.
type GroupPlayer struct {
	ExternalID *string  `json:"id,omitempty"`
	Name       string   `json:"name"`
	Position   int      `json:"position"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	LegsWon    int      `json:"legs_won"`
	LegsLost   int      `json:"legs_lost"`
	Rank       int      `json:"rank"`
	Average    *float64 `json:"average,omitempty"`
}

// GroupPlayerList is stored as a JSONB column.
type GroupPlayerList []GroupPlayer

func (l GroupPlayerList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *GroupPlayerList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into GroupPlayerList", src)
	}
}

// Group is one round-robin pool. Natural key: (tournament_id, group_number).
type Group struct {
	ID               int             `json:"id" db:"id"`
	TournamentID     int             `json:"tournament_id" db:"tournament_id"`
	GroupNumber      int             `json:"group_number" db:"group_number"`
	Name             string          `json:"name" db:"name"`
	StationNumber    *int            `json:"station_number,omitempty" db:"station_number"`
	Players          GroupPlayerList `json:"players" db:"players"`
	TotalMatches     int             `json:"total_matches" db:"total_matches"`
	CompletedMatches int             `json:"completed_matches" db:"completed_matches"`
	Status           GroupStatus     `json:"status" db:"status"`
	MemoText         *string         `json:"memo_text,omitempty" db:"memo_text"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// GroupMatch is one cell of the pairwise result matrix.
// Natural key: (group_id, match_order).
type GroupMatch struct {
	ID                int         `json:"id" db:"id"`
	GroupID           int         `json:"group_id" db:"group_id"`
	TournamentID      int         `json:"tournament_id" db:"tournament_id"`
	MatchOrder        int         `json:"match_order" db:"match_order"`
	Player1Name       string      `json:"player1_name" db:"player1_name"`
	Player2Name       string      `json:"player2_name" db:"player2_name"`
	Player1ExternalID *string     `json:"player1_external_id,omitempty" db:"player1_external_id"`
	Player2ExternalID *string     `json:"player2_external_id,omitempty" db:"player2_external_id"`
	Player1Score      int         `json:"player1_score" db:"player1_score"`
	Player2Score      int         `json:"player2_score" db:"player2_score"`
	Player1Position   int         `json:"player1_position" db:"player1_position"`
	Player2Position   int         `json:"player2_position" db:"player2_position"`
	Average           *float64    `json:"average,omitempty" db:"average"`
	Referee           *string     `json:"referee,omitempty" db:"referee"`
	Status            MatchStatus `json:"status" db:"status"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
}
