package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-predictor/models"
)

// ResolvedMatch is one knockout match after a resolution pass. Nil fields
// mean "not yet determined", never an error.
type ResolvedMatch struct {
	Number       int          `json:"number"`
	Stage        models.Stage `json:"stage"`
	HomeTeamID   *int         `json:"home_team_id,omitempty"`
	AwayTeamID   *int         `json:"away_team_id,omitempty"`
	HomeSlot     *string      `json:"home_slot,omitempty"`
	AwaySlot     *string      `json:"away_slot,omitempty"`
	WinnerTeamID *int         `json:"winner_team_id,omitempty"`
	LoserTeamID  *int         `json:"loser_team_id,omitempty"`
}

// Resolution is the full output of one evaluation pass: group tables,
// qualifiers and every knockout match's resolved occupants and outcome.
type Resolution struct {
	Standings      map[string][]Standing  `json:"standings"`
	CompleteGroups map[string]bool        `json:"complete_groups"`
	Qualifiers     Qualifiers             `json:"qualifiers"`
	Knockout       map[int]*ResolvedMatch `json:"knockout"`
}

// Resolve runs the whole pipeline (standings, qualifiers, placeholder
// resolution, cascade) against one result source. The authoritative and
// per-user speculative brackets both come from this one function; they
// differ only in src. Resolve is pure and idempotent: running it twice
// over the same input yields the same Resolution.
func Resolve(matches []*models.Match, teams map[int]*models.Team, src ResultSource) (*Resolution, error) {
	res := &Resolution{
		Standings:      make(map[string][]Standing),
		CompleteGroups: make(map[string]bool),
		Knockout:       make(map[int]*ResolvedMatch),
	}

	groupMatches := make(map[string][]*models.Match)
	var knockout []*models.Match
	for _, m := range matches {
		if m.Stage == models.StageGroup {
			if m.Group == nil {
				return nil, fmt.Errorf("group match %d has no group label", m.Number)
			}
			groupMatches[*m.Group] = append(groupMatches[*m.Group], m)
		} else {
			knockout = append(knockout, m)
		}
	}

	for group, ms := range groupMatches {
		res.Standings[group] = ComputeStandings(group, ms, teams, src)
		complete := true
		for _, m := range ms {
			if _, ok := src.Result(m.Number); !ok {
				complete = false
				break
			}
		}
		res.CompleteGroups[group] = complete
	}
	res.Qualifiers = SelectQualifiers(res.Standings, res.CompleteGroups)

	// Knockout matches resolve in ascending match-number order so that a
	// match's source matches are always handled before it.
	sort.Slice(knockout, func(i, j int) bool {
		return knockout[i].Number < knockout[j].Number
	})

	refs := make(map[int][2]*SlotRef, len(knockout))
	for _, m := range knockout {
		var pair [2]*SlotRef
		for i, expr := range []*string{m.HomeSlot, m.AwaySlot} {
			if expr == nil {
				continue
			}
			ref, err := ParseSlotRef(*expr)
			if err != nil {
				return nil, fmt.Errorf("match %d: %w", m.Number, err)
			}
			pair[i] = &ref
		}
		refs[m.Number] = pair
	}

	// A third-place slot is filled by the Nth best third, where N is the
	// slot's position among all round-of-32 third-place slots by ascending
	// match number. Recomputed every pass so it can never go stale.
	thirdPositions := make(map[int][2]int)
	position := 0
	for _, m := range knockout {
		if m.Stage != models.StageRound32 {
			continue
		}
		pair := refs[m.Number]
		var positions [2]int
		for i := range pair {
			positions[i] = -1
			if pair[i] != nil && pair[i].Kind == SlotBestThird {
				positions[i] = position
				position++
			}
		}
		thirdPositions[m.Number] = positions
	}

	for _, m := range knockout {
		rm := &ResolvedMatch{
			Number:   m.Number,
			Stage:    m.Stage,
			HomeSlot: m.HomeSlot,
			AwaySlot: m.AwaySlot,
		}
		pair := refs[m.Number]

		rm.HomeTeamID = resolveOccupant(res, pair[0], m.HomeTeamID, m.Number, 0, thirdPositions)
		rm.AwayTeamID = resolveOccupant(res, pair[1], m.AwayTeamID, m.Number, 1, thirdPositions)

		if rm.HomeTeamID != nil && rm.AwayTeamID != nil {
			if r, ok := src.Result(m.Number); ok {
				switch r.AdvancingSide() {
				case models.SideHome:
					rm.WinnerTeamID = rm.HomeTeamID
					rm.LoserTeamID = rm.AwayTeamID
				case models.SideAway:
					rm.WinnerTeamID = rm.AwayTeamID
					rm.LoserTeamID = rm.HomeTeamID
				}
				// Level with no declared winner: outcome stays open and
				// downstream matches simply remain unresolved.
			}
		}

		res.Knockout[m.Number] = rm
	}

	return res, nil
}

// resolveOccupant resolves one slot to a team ID, or nil while its
// dependency is undetermined. A slot with no placeholder expression falls
// back to the concrete team reference assigned at setup time.
func resolveOccupant(res *Resolution, ref *SlotRef, assigned *int, number, sideIndex int, thirdPositions map[int][2]int) *int {
	if ref == nil {
		return assigned
	}
	switch ref.Kind {
	case SlotGroupWinner:
		if gq, ok := res.Qualifiers.Groups[ref.Group]; ok {
			return intPtr(gq.Winner.TeamID)
		}
	case SlotGroupRunnerUp:
		if gq, ok := res.Qualifiers.Groups[ref.Group]; ok {
			return intPtr(gq.RunnerUp.TeamID)
		}
	case SlotBestThird:
		p := thirdPositions[number][sideIndex]
		if p >= 0 && p < len(res.Qualifiers.BestThirds) {
			return intPtr(res.Qualifiers.BestThirds[p].TeamID)
		}
	case SlotStageWinner, SlotStageLoser:
		abs, err := AbsoluteNumber(ref.Stage, ref.Index)
		if err != nil {
			return nil
		}
		source, ok := res.Knockout[abs]
		if !ok {
			return nil
		}
		if ref.Kind == SlotStageWinner {
			return source.WinnerTeamID
		}
		return source.LoserTeamID
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
