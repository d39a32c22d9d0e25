package models

import "time"

// TournamentStat is one row of the tournament-wide statistics table.
// Natural key: (tournament_id, player_name). Every upsert overwrites all
// numeric fields with the latest snapshot; nil means the source table did
// not carry that column (or the cell was empty).
type TournamentStat struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	PlayerName    string    `json:"player_name" db:"player_name"`
	MatchesPlayed *int      `json:"matches_played,omitempty" db:"matches_played"`
	MatchesWon    *int      `json:"matches_won,omitempty" db:"matches_won"`
	LegsPlayed    *int      `json:"legs_played,omitempty" db:"legs_played"`
	LegsWon       *int      `json:"legs_won,omitempty" db:"legs_won"`
	Scores100Plus *int      `json:"scores_100_plus,omitempty" db:"scores_100_plus"`
	Scores140Plus *int      `json:"scores_140_plus,omitempty" db:"scores_140_plus"`
	Scores180     *int      `json:"scores_180,omitempty" db:"scores_180"`
	HighFinish    *int      `json:"high_finish,omitempty" db:"high_finish"`
	BestLeg       *int      `json:"best_leg,omitempty" db:"best_leg"`
	WorstLeg      *int      `json:"worst_leg,omitempty" db:"worst_leg"`
	Avg3Darts     *float64  `json:"avg_3_darts,omitempty" db:"avg_3_darts"`
	AvgFirst9     *float64  `json:"avg_first_9,omitempty" db:"avg_first_9"`
	TotalScore    *int      `json:"total_score,omitempty" db:"total_score"`
	TotalDarts    *int      `json:"total_darts,omitempty" db:"total_darts"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
