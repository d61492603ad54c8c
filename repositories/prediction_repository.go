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
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrPredictionInvalid  = errors.New("prediction references an unknown user or match")
)

type PredictionRepository interface {
	// Upsert inserts or replaces the (user, match) prediction. Concurrent
	// upserts for the same key serialize on the unique index; last write
	// wins, which is safe because the stored row is the sole input to any
	// later recompute.
	Upsert(ctx context.Context, prediction *models.Prediction) error
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, id int, points int) error
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) Upsert(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, match_id, home_goals, away_goals, winner_side)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, match_id) DO UPDATE
		SET home_goals = EXCLUDED.home_goals,
		    away_goals = EXCLUDED.away_goals,
		    winner_side = EXCLUDED.winner_side,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.HomeGoals,
		prediction.AwayGoals,
		prediction.WinnerSide,
	).Scan(&prediction.ID, &prediction.CreatedAt, &prediction.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return ErrPredictionInvalid
		}
		return fmt.Errorf("failed to upsert prediction (user %d, match %d): %w",
			prediction.UserID, prediction.MatchID, err)
	}
	return nil
}

func (r *postgresPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	query := `
		SELECT id, user_id, match_id, home_goals, away_goals, winner_side,
		       awarded_points, created_at, updated_at
		FROM predictions
		WHERE user_id = $1 AND match_id = $2`

	prediction := &models.Prediction{}
	err := r.db.QueryRowContext(ctx, query, userID, matchID).Scan(
		&prediction.ID,
		&prediction.UserID,
		&prediction.MatchID,
		&prediction.HomeGoals,
		&prediction.AwayGoals,
		&prediction.WinnerSide,
		&prediction.AwardedPoints,
		&prediction.CreatedAt,
		&prediction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to scan prediction (user %d, match %d): %w", userID, matchID, err)
	}
	return prediction, nil
}

func (r *postgresPredictionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error) {
	query := `
		SELECT id, user_id, match_id, home_goals, away_goals, winner_side,
		       awarded_points, created_at, updated_at
		FROM predictions
		WHERE match_id = $1`
	return r.list(ctx, query, matchID)
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	query := `
		SELECT id, user_id, match_id, home_goals, away_goals, winner_side,
		       awarded_points, created_at, updated_at
		FROM predictions
		WHERE user_id = $1`
	return r.list(ctx, query, userID)
}

func (r *postgresPredictionRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		prediction := &models.Prediction{}
		if err := rows.Scan(
			&prediction.ID,
			&prediction.UserID,
			&prediction.MatchID,
			&prediction.HomeGoals,
			&prediction.AwayGoals,
			&prediction.WinnerSide,
			&prediction.AwardedPoints,
			&prediction.CreatedAt,
			&prediction.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	return predictions, rows.Err()
}

// Leaderboard ranks users by total awarded points, nickname ascending on
// ties so the ordering is deterministic.
func (r *postgresPredictionRepository) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.nickname,
		       COALESCE(SUM(p.awarded_points), 0) AS total_points,
		       COUNT(p.awarded_points) AS scored
		FROM users u
		LEFT JOIN predictions p ON p.user_id = u.id
		GROUP BY u.id, u.nickname
		ORDER BY total_points DESC, u.nickname ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		if err := rows.Scan(&entry.UserID, &entry.Nickname, &entry.TotalPoints, &entry.Scored); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpdatePoints replaces the awarded points wholesale (never a delta).
func (r *postgresPredictionRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, id int, points int) error {
	query := `UPDATE predictions SET awarded_points = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, points, id)
	if err != nil {
		return fmt.Errorf("failed to update points of prediction %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}
