package brackets

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/Dosada05/tournament-predictor/models"
)

// fullTournament builds the complete 48-team fixture with predictable
// ordering: group gi holds teams "<label>1".."<label>4" with IDs gi*4+1..
// gi*4+4, so "A1" is team 1.
func fullTournament(t *testing.T) ([]*models.Match, map[int]*models.Team) {
	t.Helper()
	teams := make([]*models.Team, 0, 48)
	lookup := make(map[int]*models.Team)
	for gi, label := range GroupLabels {
		for k := 1; k <= TeamsPerGroup; k++ {
			id := gi*TeamsPerGroup + k
			team := testTeam(id, fmt.Sprintf("%s%d0", label, k), label)
			teams = append(teams, team)
			lookup[id] = team
		}
	}
	matches, err := GenerateFixture(FixtureParams{
		Teams: teams,
		Start: time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GenerateFixture: %v", err)
	}
	return matches, lookup
}

// groupStageResults makes every group finish 1st..4th in team-ID order:
// the lower ID wins 1-0 in every pairing.
func groupStageResults(matches []*models.Match) mapSource {
	src := make(mapSource)
	for _, m := range matches {
		if m.Stage != models.StageGroup {
			continue
		}
		if *m.HomeTeamID < *m.AwayTeamID {
			src[m.Number] = Result{HomeGoals: 1, AwayGoals: 0}
		} else {
			src[m.Number] = Result{HomeGoals: 0, AwayGoals: 1}
		}
	}
	return src
}

func TestResolveGroupsAndQualifiers(t *testing.T) {
	matches, teams := fullTournament(t)
	src := groupStageResults(matches)

	res, err := Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(res.Standings) != 12 {
		t.Fatalf("standings for %d groups, want 12", len(res.Standings))
	}
	for _, label := range GroupLabels {
		if !res.CompleteGroups[label] {
			t.Fatalf("group %s should be complete", label)
		}
	}

	gqA, ok := res.Qualifiers.Groups["A"]
	if !ok {
		t.Fatal("group A produced no qualifiers")
	}
	if gqA.Winner.TeamID != 1 || gqA.RunnerUp.TeamID != 2 {
		t.Errorf("group A winner/runner-up = %d/%d, want 1/2", gqA.Winner.TeamID, gqA.RunnerUp.TeamID)
	}

	if len(res.Qualifiers.BestThirds) != BestThirdCount {
		t.Fatalf("best thirds = %d, want %d", len(res.Qualifiers.BestThirds), BestThirdCount)
	}
	// All thirds have identical records, so the name tie-break keeps
	// groups A..H in order.
	for i := 0; i < BestThirdCount; i++ {
		wantID := i*TeamsPerGroup + 3
		if res.Qualifiers.BestThirds[i].TeamID != wantID {
			t.Errorf("best third %d = team %d, want %d", i, res.Qualifiers.BestThirds[i].TeamID, wantID)
		}
	}
}

func TestResolveRound32Occupants(t *testing.T) {
	matches, teams := fullTournament(t)
	src := groupStageResults(matches)

	res, err := Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	m73 := res.Knockout[73]
	if m73.HomeTeamID == nil || *m73.HomeTeamID != 1 {
		t.Errorf("match 73 home = %v, want winner of group A (team 1)", m73.HomeTeamID)
	}
	// First third-place slot in bracket order takes the best third (A3).
	if m73.AwayTeamID == nil || *m73.AwayTeamID != 3 {
		t.Errorf("match 73 away = %v, want best third (team 3)", m73.AwayTeamID)
	}

	// Match 74: Runner-up B vs Runner-up D.
	m74 := res.Knockout[74]
	if m74.HomeTeamID == nil || *m74.HomeTeamID != 6 {
		t.Errorf("match 74 home = %v, want runner-up B (team 6)", m74.HomeTeamID)
	}
	if m74.AwayTeamID == nil || *m74.AwayTeamID != 14 {
		t.Errorf("match 74 away = %v, want runner-up D (team 14)", m74.AwayTeamID)
	}

	// No knockout results yet: occupants resolve, winners stay open.
	if m73.WinnerTeamID != nil {
		t.Error("match 73 must have no winner before a result exists")
	}
	if r16 := res.Knockout[89]; r16.HomeTeamID != nil {
		t.Error("round-of-16 slots must stay unresolved until round-of-32 winners exist")
	}
}

func TestResolveCascadesToFinal(t *testing.T) {
	matches, teams := fullTournament(t)
	src := groupStageResults(matches)
	// Every knockout match: home side wins 2-1.
	for n := BaseRound32; n <= BaseFinal; n++ {
		src[n] = Result{HomeGoals: 2, AwayGoals: 1}
	}

	res, err := Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Winner of 73 must land in the home slot of 89, and the winner of 89
	// in the home slot of 97, all the way up the home chain to the final.
	for _, step := range []struct{ from, to int }{
		{73, 89}, {89, 97}, {97, 101}, {101, 104},
	} {
		from, to := res.Knockout[step.from], res.Knockout[step.to]
		if from.WinnerTeamID == nil || to.HomeTeamID == nil {
			t.Fatalf("cascade %d->%d unresolved", step.from, step.to)
		}
		if *from.WinnerTeamID != *to.HomeTeamID {
			t.Errorf("winner of %d (team %d) should occupy home of %d (got %d)",
				step.from, *from.WinnerTeamID, step.to, *to.HomeTeamID)
		}
	}

	// Team 1 wins group A, then every home tie up the chain.
	final := res.Knockout[BaseFinal]
	if *final.WinnerTeamID != 1 {
		t.Errorf("champion = team %d, want 1", *final.WinnerTeamID)
	}

	// Semifinal losers meet in the third-place match, same cascade pass.
	third := res.Knockout[BaseThird]
	semi1, semi2 := res.Knockout[101], res.Knockout[102]
	if *third.HomeTeamID != *semi1.LoserTeamID {
		t.Errorf("third-place home = %d, want loser of 101 (%d)", *third.HomeTeamID, *semi1.LoserTeamID)
	}
	if *third.AwayTeamID != *semi2.LoserTeamID {
		t.Errorf("third-place away = %d, want loser of 102 (%d)", *third.AwayTeamID, *semi2.LoserTeamID)
	}
}

func TestResolveLevelKnockoutNeedsDeclaredWinner(t *testing.T) {
	matches, teams := fullTournament(t)
	src := groupStageResults(matches)
	src[73] = Result{HomeGoals: 1, AwayGoals: 1} // level, no declared winner

	res, err := Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Knockout[73].WinnerTeamID != nil {
		t.Error("level knockout result without a declared winner must stay open")
	}

	src[73] = Result{HomeGoals: 1, AwayGoals: 1, Winner: models.SideAway}
	res, err = Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	m73 := res.Knockout[73]
	if m73.WinnerTeamID == nil || *m73.WinnerTeamID != *m73.AwayTeamID {
		t.Error("declared winner must decide a level knockout result")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	matches, teams := fullTournament(t)
	src := groupStageResults(matches)
	for n := BaseRound32; n <= 96; n++ {
		src[n] = Result{HomeGoals: 3, AwayGoals: 0}
	}

	first, err := Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := Resolve(matches, teams, src)
	if err != nil {
		t.Fatalf("Resolve (second pass): %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two resolution passes over identical input must converge to the same state")
	}
}

func TestResolveSpeculativeIgnoresOfficialState(t *testing.T) {
	matches, teams := fullTournament(t)

	// Officially, team 1 tops group A. The user predicted the reverse
	// order for every group A match, so their speculative bracket must
	// send team 4 through instead, no matter what was recorded.
	for _, m := range matches {
		if m.Stage == models.StageGroup && *m.Group == "A" {
			home, away := 0, 1
			if *m.HomeTeamID < *m.AwayTeamID {
				home, away = 1, 0
			}
			m.HomeScore, m.AwayScore = &home, &away
		}
	}

	var predictions []*models.Prediction
	for i, m := range matches {
		if m.Stage != models.StageGroup || *m.Group != "A" {
			continue
		}
		m.ID = i + 1
		p := &models.Prediction{UserID: 7, MatchID: m.ID}
		if *m.HomeTeamID > *m.AwayTeamID {
			p.HomeGoals = 2
		} else {
			p.AwayGoals = 2
		}
		predictions = append(predictions, p)
	}

	speculative, err := Resolve(matches, teams, PredictionResults(matches, predictions))
	if err != nil {
		t.Fatalf("Resolve (speculative): %v", err)
	}
	official, err := Resolve(matches, teams, OfficialResults(matches))
	if err != nil {
		t.Fatalf("Resolve (official): %v", err)
	}

	if got := official.Qualifiers.Groups["A"].Winner.TeamID; got != 1 {
		t.Fatalf("official group A winner = %d, want 1", got)
	}
	if got := speculative.Qualifiers.Groups["A"].Winner.TeamID; got != 4 {
		// Predictions also favor high IDs: team 4 tops the user's table.
		t.Fatalf("speculative group A winner = %d, want 4", got)
	}
	if !speculative.CompleteGroups["A"] {
		t.Error("group A is speculatively complete: the user predicted all six matches")
	}
	if speculative.CompleteGroups["B"] {
		t.Error("group B has no predictions and must be speculatively incomplete")
	}
	if official.CompleteGroups["B"] {
		t.Error("group B has no official results and must be officially incomplete")
	}
}
