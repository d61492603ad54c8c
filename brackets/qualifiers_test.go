package brackets

import "testing"

func TestSelectQualifiersPicksTopTwoAndThird(t *testing.T) {
	standings := map[string][]Standing{
		"A": {
			{TeamID: 1, TeamName: "Anglia", Group: "A", Points: 9},
			{TeamID: 2, TeamName: "Borland", Group: "A", Points: 6},
			{TeamID: 3, TeamName: "Cusco", Group: "A", Points: 3},
			{TeamID: 4, TeamName: "Dalmatia", Group: "A", Points: 0},
		},
		"B": {
			{TeamID: 5, TeamName: "Emland", Group: "B", Points: 7},
			{TeamID: 6, TeamName: "Fargo", Group: "B", Points: 5},
			{TeamID: 7, TeamName: "Gorsk", Group: "B", Points: 4},
			{TeamID: 8, TeamName: "Havala", Group: "B", Points: 0},
		},
	}
	complete := map[string]bool{"A": true, "B": true}

	q := SelectQualifiers(standings, complete)

	if q.Groups["A"].Winner.TeamID != 1 || q.Groups["A"].RunnerUp.TeamID != 2 {
		t.Errorf("group A qualifiers = %+v, want winner 1, runner-up 2", q.Groups["A"])
	}
	if q.Groups["B"].Winner.TeamID != 5 || q.Groups["B"].RunnerUp.TeamID != 6 {
		t.Errorf("group B qualifiers = %+v, want winner 5, runner-up 6", q.Groups["B"])
	}

	if len(q.BestThirds) != 2 {
		t.Fatalf("best thirds = %d entries, want 2", len(q.BestThirds))
	}
	// Gorsk (4 pts) outranks Cusco (3 pts) in the cross-group pool.
	if q.BestThirds[0].TeamID != 7 || q.BestThirds[1].TeamID != 3 {
		t.Errorf("best thirds = [%d %d], want [7 3]", q.BestThirds[0].TeamID, q.BestThirds[1].TeamID)
	}
	if q.BestThirds[0].Group != "B" || q.BestThirds[1].Group != "A" {
		t.Error("best thirds must stay tagged with their originating group")
	}
}

func TestSelectQualifiersSkipsIncompleteGroups(t *testing.T) {
	standings := map[string][]Standing{
		"A": {
			{TeamID: 1, TeamName: "Anglia", Points: 9},
			{TeamID: 2, TeamName: "Borland", Points: 6},
			{TeamID: 3, TeamName: "Cusco", Points: 3},
		},
		"B": {
			{TeamID: 5, TeamName: "Emland", Points: 6},
			{TeamID: 6, TeamName: "Fargo", Points: 4},
			{TeamID: 7, TeamName: "Gorsk", Points: 1},
		},
	}
	complete := map[string]bool{"A": true, "B": false}

	q := SelectQualifiers(standings, complete)

	if _, ok := q.Groups["B"]; ok {
		t.Error("incomplete group B must contribute no qualifiers")
	}
	if len(q.Groups) != 1 {
		t.Errorf("qualified groups = %d, want 1", len(q.Groups))
	}
	if len(q.BestThirds) != 1 || q.BestThirds[0].TeamID != 3 {
		t.Errorf("best thirds = %+v, want only Cusco from group A", q.BestThirds)
	}
}

func TestSelectQualifiersCapsBestThirds(t *testing.T) {
	standings := make(map[string][]Standing)
	complete := make(map[string]bool)
	for i, label := range GroupLabels {
		base := i * 4
		standings[label] = []Standing{
			{TeamID: base + 1, TeamName: "W" + label, Group: label, Points: 9},
			{TeamID: base + 2, TeamName: "R" + label, Group: label, Points: 6},
			// Spread third-place points so the cut is deterministic.
			{TeamID: base + 3, TeamName: "T" + label, Group: label, Points: 12 - i},
			{TeamID: base + 4, TeamName: "L" + label, Group: label, Points: 0},
		}
		complete[label] = true
	}

	q := SelectQualifiers(standings, complete)

	if len(q.BestThirds) != BestThirdCount {
		t.Fatalf("best thirds = %d, want %d", len(q.BestThirds), BestThirdCount)
	}
	// Groups A..H hold the eight highest third-place point totals (12..5).
	for i, row := range q.BestThirds {
		if row.Group != GroupLabels[i] {
			t.Errorf("best third %d from group %s, want %s", i, row.Group, GroupLabels[i])
		}
	}
}
