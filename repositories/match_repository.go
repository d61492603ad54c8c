package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match references an unknown team")
)

const matchColumns = `
	id, match_number, stage, group_label, home_team_id, away_team_id,
	home_slot, away_slot, home_score, away_score, winner_side, bonus,
	kickoff_time, created_at`

const (
	matchSelectByNumberQuery = `SELECT` + matchColumns + ` FROM matches WHERE match_number = $1`
	matchListQuery           = `SELECT` + matchColumns + ` FROM matches ORDER BY match_number`
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByNumber(ctx context.Context, number int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	Count(ctx context.Context) (int, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, number int, homeScore, awayScore int, winnerSide *models.Side) error
	UpdateSideTeam(ctx context.Context, exec SQLExecutor, number int, side models.Side, teamID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(match_number, stage, group_label, home_team_id, away_team_id,
			 home_slot, away_slot, home_score, away_score, winner_side, bonus, kickoff_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.Number,
		match.Stage,
		match.Group,
		match.HomeTeamID,
		match.AwayTeamID,
		match.HomeSlot,
		match.AwaySlot,
		match.HomeScore,
		match.AwayScore,
		match.WinnerSide,
		match.Bonus,
		match.KickoffTime,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err, match.Number)
}

func (r *postgresMatchRepository) GetByNumber(ctx context.Context, number int) (*models.Match, error) {
	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, matchSelectByNumberQuery, number).Scan(scanTargets(match)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", number, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, matchListQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match := &models.Match{}
		if err := rows.Scan(scanTargets(match)...); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, number int, homeScore, awayScore int, winnerSide *models.Side) error {
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, winner_side = $3
		WHERE match_number = $4`

	result, err := exec.ExecContext(ctx, query, homeScore, awayScore, winnerSide, number)
	if err != nil {
		return fmt.Errorf("failed to update result of match %d: %w", number, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// UpdateSideTeam writes a cascaded team reference into one slot of a
// knockout match. Writing the team already stored is a no-op at the SQL
// level; a different team overwrites (result correction).
func (r *postgresMatchRepository) UpdateSideTeam(ctx context.Context, exec SQLExecutor, number int, side models.Side, teamID int) error {
	column := "home_team_id"
	if side == models.SideAway {
		column = "away_team_id"
	}
	query := fmt.Sprintf(`UPDATE matches SET %s = $1 WHERE match_number = $2`, column)

	result, err := exec.ExecContext(ctx, query, teamID, number)
	if err != nil {
		return r.handleMatchError(err, number)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error, number int) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return ErrMatchTeamInvalid
	}
	return fmt.Errorf("match %d write failed: %w", number, err)
}

func scanTargets(m *models.Match) []interface{} {
	return []interface{}{
		&m.ID,
		&m.Number,
		&m.Stage,
		&m.Group,
		&m.HomeTeamID,
		&m.AwayTeamID,
		&m.HomeSlot,
		&m.AwaySlot,
		&m.HomeScore,
		&m.AwayScore,
		&m.WinnerSide,
		&m.Bonus,
		&m.KickoffTime,
		&m.CreatedAt,
	}
}
