package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dartcorner/liveboard/models"
	"github.com/lib/pq"
)

type MatchRepository interface {
	// UpsertBatch writes matches keyed by (tournament_id, external_id):
	// re-scraping a pairing updates its row in place.
	UpsertBatch(ctx context.Context, exec SQLExecutor, tournamentID int, matches []models.Match) error

	// FinishMissing transitions previously active/pending matches whose
	// external id is absent from presentIDs to finished. A no-op when
	// presentIDs is empty, so a transient empty fetch cannot mass-finish
	// a tournament. Returns the number of rows transitioned.
	FinishMissing(ctx context.Context, exec SQLExecutor, tournamentID int, presentIDs []string) (int64, error)

	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const upsertMatchQuery = `
	INSERT INTO matches
		(tournament_id, external_id, player1_name, player2_name,
		 player1_score, player2_score, station_number, referee, status, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	ON CONFLICT (tournament_id, external_id) DO UPDATE SET
		player1_name   = EXCLUDED.player1_name,
		player2_name   = EXCLUDED.player2_name,
		player1_score  = EXCLUDED.player1_score,
		player2_score  = EXCLUDED.player2_score,
		station_number = EXCLUDED.station_number,
		referee        = EXCLUDED.referee,
		status         = EXCLUDED.status,
		updated_at     = NOW()`

func (r *postgresMatchRepository) UpsertBatch(ctx context.Context, exec SQLExecutor, tournamentID int, matches []models.Match) error {
	executor := r.getExecutor(exec)
	for _, m := range matches {
		_, err := executor.ExecContext(ctx, upsertMatchQuery,
			tournamentID, m.ExternalID, m.Player1Name, m.Player2Name,
			m.Player1Score, m.Player2Score, m.StationNumber, m.Referee, m.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert match %s: %w", m.ExternalID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) FinishMissing(ctx context.Context, exec SQLExecutor, tournamentID int, presentIDs []string) (int64, error) {
	if len(presentIDs) == 0 {
		return 0, nil
	}
	executor := r.getExecutor(exec)

	query := `
		UPDATE matches
		SET status = 'finished', updated_at = NOW()
		WHERE tournament_id = $1
		  AND status IN ('active', 'pending')
		  AND NOT (external_id = ANY($2))`

	result, err := executor.ExecContext(ctx, query, tournamentID, pq.Array(presentIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to finish missing matches for tournament %d: %w", tournamentID, err)
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `
		SELECT id, tournament_id, external_id, player1_name, player2_name,
		       player1_score, player2_score, station_number, referee, status,
		       created_at, updated_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY station_number ASC NULLS LAST, updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.ExternalID, &m.Player1Name, &m.Player2Name,
			&m.Player1Score, &m.Player2Score, &m.StationNumber, &m.Referee, &m.Status,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
