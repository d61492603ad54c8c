package brackets

import "sort"

// BestThirdCount is how many third-placed teams qualify for the knockout.
const BestThirdCount = 8

type GroupQualifiers struct {
	Winner   Standing `json:"winner"`
	RunnerUp Standing `json:"runner_up"`
}

// Qualifiers holds the knockout entrants derived from group standings.
// Only complete groups contribute; partial results are valid, not an error.
type Qualifiers struct {
	// Groups maps a complete group's label to its winner and runner-up.
	Groups map[string]GroupQualifiers `json:"groups"`
	// BestThirds are the top third-placed teams across all complete
	// groups, ranked with the same comparator as group tables. Fewer than
	// BestThirdCount entries when fewer groups are complete.
	BestThirds []Standing `json:"best_thirds"`
}

// SelectQualifiers derives winners, runners-up and the best-third pool from
// per-group standings. standingsByGroup must contain sorted tables (as
// produced by ComputeStandings); complete marks groups whose every match
// has a result.
func SelectQualifiers(standingsByGroup map[string][]Standing, complete map[string]bool) Qualifiers {
	q := Qualifiers{Groups: make(map[string]GroupQualifiers)}

	thirds := make([]Standing, 0, len(standingsByGroup))
	for group, table := range standingsByGroup {
		if !complete[group] || len(table) < 3 {
			continue
		}
		q.Groups[group] = GroupQualifiers{Winner: table[0], RunnerUp: table[1]}
		thirds = append(thirds, table[2])
	}

	sort.Slice(thirds, func(i, j int) bool {
		return standingLess(&thirds[i], &thirds[j])
	})
	if len(thirds) > BestThirdCount {
		thirds = thirds[:BestThirdCount]
	}
	q.BestThirds = thirds
	return q
}
