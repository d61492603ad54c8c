package models

import "time"

// Prediction is unique per (user, match). WinnerSide stands in for a
// penalty-shootout outcome when a knockout prediction is level on score.
// AwardedPoints is replaced wholesale every time the match's official
// result is set or corrected, never patched incrementally.
type Prediction struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	MatchID       int       `json:"match_id" db:"match_id"`
	HomeGoals     int       `json:"home_goals" db:"home_goals"`
	AwayGoals     int       `json:"away_goals" db:"away_goals"`
	WinnerSide    *Side     `json:"winner_side,omitempty" db:"winner_side"`
	AwardedPoints *int      `json:"awarded_points,omitempty" db:"awarded_points"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Match *Match `json:"match,omitempty" db:"-"`
}
