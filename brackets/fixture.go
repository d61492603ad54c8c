package brackets

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/tournament-predictor/models"
)

// GroupLabels are the twelve group labels of the tournament.
var GroupLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

// TeamsPerGroup is fixed by the format.
const TeamsPerGroup = 4

// Pairing order of the four teams in a group (by position in the group's
// team list): three rounds of two matches each.
var groupPairings = [6][2]int{
	{0, 1}, {2, 3},
	{0, 2}, {3, 1},
	{3, 0}, {1, 2},
}

// round32Template fixes which qualifiers meet in the round of 32, in match
// order 73..88. Eight winners draw a best third, four winners draw a
// runner-up, and the remaining eight runners-up pair off.
var round32Template = [16][2]string{
	{"Winner A", "3rd C/D/E/F"},
	{"Runner-up B", "Runner-up D"},
	{"Winner C", "3rd A/B/F/G"},
	{"Winner E", "Runner-up F"},
	{"Winner B", "3rd E/H/I/J"},
	{"Runner-up A", "Runner-up C"},
	{"Winner D", "3rd B/G/K/L"},
	{"Winner G", "Runner-up H"},
	{"Winner F", "3rd D/H/J/L"},
	{"Runner-up E", "Runner-up G"},
	{"Winner I", "3rd A/C/K/L"},
	{"Winner K", "Runner-up L"},
	{"Winner H", "3rd B/E/I/J"},
	{"Runner-up I", "Runner-up K"},
	{"Winner J", "3rd F/G/H/K"},
	{"Winner L", "Runner-up J"},
}

// FixtureParams configures the generated schedule. Spacing is the gap
// between consecutive kickoffs within a stage; stages are a day apart.
type FixtureParams struct {
	Teams   []*models.Team
	Start   time.Time
	Spacing time.Duration
}

// GenerateFixture produces the complete 104-match template: 72 group
// matches (numbers 1..72), then the knockout skeleton whose slots carry
// placeholder expressions resolvable by the evaluator. Teams must number
// exactly 48, four per group.
func GenerateFixture(params FixtureParams) ([]*models.Match, error) {
	byGroup := make(map[string][]*models.Team)
	for _, t := range params.Teams {
		if t.Group == nil {
			return nil, fmt.Errorf("team %q has no group assigned", t.Name)
		}
		byGroup[*t.Group] = append(byGroup[*t.Group], t)
	}
	if len(byGroup) != len(GroupLabels) {
		return nil, fmt.Errorf("expected %d groups, got %d", len(GroupLabels), len(byGroup))
	}
	for _, label := range GroupLabels {
		group := byGroup[label]
		if len(group) != TeamsPerGroup {
			return nil, fmt.Errorf("group %s has %d teams, want %d", label, len(group), TeamsPerGroup)
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
	}

	spacing := params.Spacing
	if spacing <= 0 {
		spacing = 3 * time.Hour
	}

	matches := make([]*models.Match, 0, TotalMatchCount)
	number := 1

	for _, label := range GroupLabels {
		group := byGroup[label]
		groupLabel := label
		for _, pairing := range groupPairings {
			home, away := group[pairing[0]].ID, group[pairing[1]].ID
			matches = append(matches, &models.Match{
				Number:      number,
				Stage:       models.StageGroup,
				Group:       &groupLabel,
				HomeTeamID:  &home,
				AwayTeamID:  &away,
				KickoffTime: params.Start.Add(time.Duration(number-1) * spacing),
			})
			number++
		}
	}

	knockoutStart := params.Start.Add(72 * spacing).Add(24 * time.Hour)
	addKnockout := func(stage models.Stage, homeSlot, awaySlot string, bonus bool) {
		h, a := homeSlot, awaySlot
		matches = append(matches, &models.Match{
			Number:      number,
			Stage:       stage,
			HomeSlot:    &h,
			AwaySlot:    &a,
			Bonus:       bonus,
			KickoffTime: knockoutStart.Add(time.Duration(number-BaseRound32) * spacing),
		})
		number++
	}

	for _, pair := range round32Template {
		addKnockout(models.StageRound32, pair[0], pair[1], false)
	}
	for i := 1; i <= 16; i += 2 {
		addKnockout(models.StageRound16,
			fmt.Sprintf("Winner R32 M%d", i), fmt.Sprintf("Winner R32 M%d", i+1), false)
	}
	for i := 1; i <= 8; i += 2 {
		addKnockout(models.StageQuarter,
			fmt.Sprintf("Winner R16 M%d", i), fmt.Sprintf("Winner R16 M%d", i+1), false)
	}
	addKnockout(models.StageSemi, "Winner QF M1", "Winner QF M2", true)
	addKnockout(models.StageSemi, "Winner QF M3", "Winner QF M4", true)
	addKnockout(models.StageThird, "Loser SF M1", "Loser SF M2", true)
	addKnockout(models.StageFinal, "Winner SF M1", "Winner SF M2", true)

	return matches, nil
}
