package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dartcorner/liveboard/models"
)

type StatRepository interface {
	// UpsertBatch writes stats keyed by (tournament_id, player_name).
	// All numeric fields are overwritten with the latest snapshot.
	UpsertBatch(ctx context.Context, exec SQLExecutor, tournamentID int, stats []models.TournamentStat) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.TournamentStat, error)
}

type postgresStatRepository struct {
	db *sql.DB
}

func NewPostgresStatRepository(db *sql.DB) StatRepository {
	return &postgresStatRepository{db: db}
}

func (r *postgresStatRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const upsertStatQuery = `
	INSERT INTO tournament_stats
		(tournament_id, player_name, matches_played, matches_won, legs_played, legs_won,
		 scores_100_plus, scores_140_plus, scores_180, high_finish, best_leg, worst_leg,
		 avg_3_darts, avg_first_9, total_score, total_darts, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
	ON CONFLICT (tournament_id, player_name) DO UPDATE SET
		matches_played  = EXCLUDED.matches_played,
		matches_won     = EXCLUDED.matches_won,
		legs_played     = EXCLUDED.legs_played,
		legs_won        = EXCLUDED.legs_won,
		scores_100_plus = EXCLUDED.scores_100_plus,
		scores_140_plus = EXCLUDED.scores_140_plus,
		scores_180      = EXCLUDED.scores_180,
		high_finish     = EXCLUDED.high_finish,
		best_leg        = EXCLUDED.best_leg,
		worst_leg       = EXCLUDED.worst_leg,
		avg_3_darts     = EXCLUDED.avg_3_darts,
		avg_first_9     = EXCLUDED.avg_first_9,
		total_score     = EXCLUDED.total_score,
		total_darts     = EXCLUDED.total_darts,
		updated_at      = NOW()`

func (r *postgresStatRepository) UpsertBatch(ctx context.Context, exec SQLExecutor, tournamentID int, stats []models.TournamentStat) error {
	executor := r.getExecutor(exec)
	for _, s := range stats {
		_, err := executor.ExecContext(ctx, upsertStatQuery,
			tournamentID, s.PlayerName, s.MatchesPlayed, s.MatchesWon, s.LegsPlayed, s.LegsWon,
			s.Scores100Plus, s.Scores140Plus, s.Scores180, s.HighFinish, s.BestLeg, s.WorstLeg,
			s.Avg3Darts, s.AvgFirst9, s.TotalScore, s.TotalDarts,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert stats for %q: %w", s.PlayerName, err)
		}
	}
	return nil
}

func (r *postgresStatRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.TournamentStat, error) {
	query := `
		SELECT id, tournament_id, player_name, matches_played, matches_won, legs_played, legs_won,
		       scores_100_plus, scores_140_plus, scores_180, high_finish, best_leg, worst_leg,
		       avg_3_darts, avg_first_9, total_score, total_darts, updated_at
		FROM tournament_stats
		WHERE tournament_id = $1
		ORDER BY avg_3_darts DESC NULLS LAST, player_name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	stats := make([]models.TournamentStat, 0)
	for rows.Next() {
		var s models.TournamentStat
		if err := rows.Scan(
			&s.ID, &s.TournamentID, &s.PlayerName, &s.MatchesPlayed, &s.MatchesWon, &s.LegsPlayed, &s.LegsWon,
			&s.Scores100Plus, &s.Scores140Plus, &s.Scores180, &s.HighFinish, &s.BestLeg, &s.WorstLeg,
			&s.Avg3Darts, &s.AvgFirst9, &s.TotalScore, &s.TotalDarts, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stat row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
