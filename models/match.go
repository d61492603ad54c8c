package models

import "time"

type Stage string

const (
	StageGroup   Stage = "group"
	StageRound32 Stage = "round32"
	StageRound16 Stage = "round16"
	StageQuarter Stage = "quarter"
	StageSemi    Stage = "semi"
	StageThird   Stage = "third"
	StageFinal   Stage = "final"
)

func (s Stage) IsKnockout() bool {
	return s != StageGroup
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Match occupies a fixed bracket position given by Number (1..104).
// Knockout slots start out as placeholder expressions (HomeSlot/AwaySlot)
// and get concrete team references once the cascade resolves them.
type Match struct {
	ID          int       `json:"id" db:"id"`
	Number      int       `json:"number" db:"match_number"`
	Stage       Stage     `json:"stage" db:"stage"`
	Group       *string   `json:"group,omitempty" db:"group_label"`
	HomeTeamID  *int      `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID  *int      `json:"away_team_id,omitempty" db:"away_team_id"`
	HomeSlot    *string   `json:"home_slot,omitempty" db:"home_slot"`
	AwaySlot    *string   `json:"away_slot,omitempty" db:"away_slot"`
	HomeScore   *int      `json:"home_score,omitempty" db:"home_score"`
	AwayScore   *int      `json:"away_score,omitempty" db:"away_score"`
	WinnerSide  *Side     `json:"winner_side,omitempty" db:"winner_side"`
	Bonus       bool      `json:"bonus" db:"bonus"`
	KickoffTime time.Time `json:"kickoff_time" db:"kickoff_time"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// HasResult reports whether an official score pair has been recorded.
func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
