package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dartcorner/liveboard/models"
)

type GroupRepository interface {
	// UpsertBatch writes groups keyed by (tournament_id, group_number) and
	// returns the persisted rows with their storage IDs, which group-match
	// upserts depend on.
	UpsertBatch(ctx context.Context, exec SQLExecutor, tournamentID int, groups []models.Group) ([]models.Group, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Group, error)
}

type GroupMatchRepository interface {
	// UpsertBatch writes group matches keyed by (group_id, match_order).
	// The parent group row must exist before this is called.
	UpsertBatch(ctx context.Context, exec SQLExecutor, groupID, tournamentID int, matches []models.GroupMatch) error
	ListByGroup(ctx context.Context, groupID int) ([]models.GroupMatch, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const upsertGroupQuery = `
	INSERT INTO groups
		(tournament_id, group_number, name, station_number, players,
		 total_matches, completed_matches, status, memo_text, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	ON CONFLICT (tournament_id, group_number) DO UPDATE SET
		name              = EXCLUDED.name,
		station_number    = EXCLUDED.station_number,
		players           = EXCLUDED.players,
		total_matches     = EXCLUDED.total_matches,
		completed_matches = EXCLUDED.completed_matches,
		status            = EXCLUDED.status,
		memo_text         = EXCLUDED.memo_text,
		updated_at        = NOW()
	RETURNING id, created_at, updated_at`

func (r *postgresGroupRepository) UpsertBatch(ctx context.Context, exec SQLExecutor, tournamentID int, groups []models.Group) ([]models.Group, error) {
	executor := r.getExecutor(exec)

	saved := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		g.TournamentID = tournamentID
		err := executor.QueryRowContext(ctx, upsertGroupQuery,
			tournamentID, g.GroupNumber, g.Name, g.StationNumber, g.Players,
			g.TotalMatches, g.CompletedMatches, g.Status, g.MemoText,
		).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert group %d: %w", g.GroupNumber, err)
		}
		saved = append(saved, g)
	}
	return saved, nil
}

func (r *postgresGroupRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Group, error) {
	query := `
		SELECT id, tournament_id, group_number, name, station_number, players,
		       total_matches, completed_matches, status, memo_text, created_at, updated_at
		FROM groups
		WHERE tournament_id = $1
		ORDER BY group_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(
			&g.ID, &g.TournamentID, &g.GroupNumber, &g.Name, &g.StationNumber, &g.Players,
			&g.TotalMatches, &g.CompletedMatches, &g.Status, &g.MemoText, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

type postgresGroupMatchRepository struct {
	db *sql.DB
}

func NewPostgresGroupMatchRepository(db *sql.DB) GroupMatchRepository {
	return &postgresGroupMatchRepository{db: db}
}

func (r *postgresGroupMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const upsertGroupMatchQuery = `
	INSERT INTO group_matches
		(group_id, tournament_id, match_order, player1_name, player2_name,
		 player1_external_id, player2_external_id, player1_score, player2_score,
		 player1_position, player2_position, average, referee, status, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
	ON CONFLICT (group_id, match_order) DO UPDATE SET
		player1_name        = EXCLUDED.player1_name,
		player2_name        = EXCLUDED.player2_name,
		player1_external_id = EXCLUDED.player1_external_id,
		player2_external_id = EXCLUDED.player2_external_id,
		player1_score       = EXCLUDED.player1_score,
		player2_score       = EXCLUDED.player2_score,
		player1_position    = EXCLUDED.player1_position,
		player2_position    = EXCLUDED.player2_position,
		average             = EXCLUDED.average,
		referee             = EXCLUDED.referee,
		status              = EXCLUDED.status,
		updated_at          = NOW()`

func (r *postgresGroupMatchRepository) UpsertBatch(ctx context.Context, exec SQLExecutor, groupID, tournamentID int, matches []models.GroupMatch) error {
	executor := r.getExecutor(exec)
	for _, m := range matches {
		_, err := executor.ExecContext(ctx, upsertGroupMatchQuery,
			groupID, tournamentID, m.MatchOrder, m.Player1Name, m.Player2Name,
			m.Player1ExternalID, m.Player2ExternalID, m.Player1Score, m.Player2Score,
			m.Player1Position, m.Player2Position, m.Average, m.Referee, m.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert group match %d of group %d: %w", m.MatchOrder, groupID, err)
		}
	}
	return nil
}

func (r *postgresGroupMatchRepository) ListByGroup(ctx context.Context, groupID int) ([]models.GroupMatch, error) {
	query := `
		SELECT id, group_id, tournament_id, match_order, player1_name, player2_name,
		       player1_external_id, player2_external_id, player1_score, player2_score,
		       player1_position, player2_position, average, referee, status,
		       created_at, updated_at
		FROM group_matches
		WHERE group_id = $1
		ORDER BY match_order ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for group %d: %w", groupID, err)
	}
	defer rows.Close()

	matches := make([]models.GroupMatch, 0)
	for rows.Next() {
		var m models.GroupMatch
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.TournamentID, &m.MatchOrder, &m.Player1Name, &m.Player2Name,
			&m.Player1ExternalID, &m.Player2ExternalID, &m.Player1Score, &m.Player2Score,
			&m.Player1Position, &m.Player2Position, &m.Average, &m.Referee, &m.Status,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
