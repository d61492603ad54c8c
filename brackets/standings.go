package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-predictor/models"
)

// Standing is one derived table row for a team within its group. Standings
// are recomputed from scratch on every pass and never persisted.
type Standing struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Group        string `json:"group"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// standingLess is the one ranking comparator used everywhere a ranking is
// needed: points desc, goal difference desc, goals for desc, then team name
// asc as the final deterministic tie-break.
func standingLess(a, b *Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDiff != b.GoalDiff {
		return a.GoalDiff > b.GoalDiff
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.TeamName < b.TeamName
}

// ComputeStandings aggregates the given group's matches into a sorted
// table. Matches without a result in src are skipped entirely, not treated
// as 0-0. Pure function of its input.
func ComputeStandings(group string, matches []*models.Match, teams map[int]*models.Team, src ResultSource) []Standing {
	rows := make(map[int]*Standing)
	order := make([]int, 0, 4)

	row := func(teamID int) *Standing {
		if r, ok := rows[teamID]; ok {
			return r
		}
		r := &Standing{TeamID: teamID, Group: group}
		if t, ok := teams[teamID]; ok {
			r.TeamName = t.Name
		}
		rows[teamID] = r
		order = append(order, teamID)
		return r
	}

	for _, m := range matches {
		if m.HomeTeamID == nil || m.AwayTeamID == nil {
			continue
		}
		home := row(*m.HomeTeamID)
		away := row(*m.AwayTeamID)

		res, ok := src.Result(m.Number)
		if !ok {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += res.HomeGoals
		home.GoalsAgainst += res.AwayGoals
		away.GoalsFor += res.AwayGoals
		away.GoalsAgainst += res.HomeGoals

		switch res.Outcome() {
		case 1:
			home.Wins++
			away.Losses++
			home.Points += 3
		case -1:
			away.Wins++
			home.Losses++
			away.Points += 3
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	table := make([]Standing, 0, len(order))
	for _, teamID := range order {
		r := rows[teamID]
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		table = append(table, *r)
	}

	sort.Slice(table, func(i, j int) bool {
		return standingLess(&table[i], &table[j])
	})
	return table
}
