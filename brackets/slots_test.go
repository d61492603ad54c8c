package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-predictor/models"
)

func TestParseSlotRef(t *testing.T) {
	tests := []struct {
		expr string
		want SlotRef
	}{
		{"Winner A", SlotRef{Kind: SlotGroupWinner, Group: "A"}},
		{"Runner-up L", SlotRef{Kind: SlotGroupRunnerUp, Group: "L"}},
		{"Winner R32 M3", SlotRef{Kind: SlotStageWinner, Stage: models.StageRound32, Index: 3}},
		{"Winner QF M4", SlotRef{Kind: SlotStageWinner, Stage: models.StageQuarter, Index: 4}},
		{"Loser SF M1", SlotRef{Kind: SlotStageLoser, Stage: models.StageSemi, Index: 1}},
		{"Winner R16 M8", SlotRef{Kind: SlotStageWinner, Stage: models.StageRound16, Index: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseSlotRef(tt.expr)
			if err != nil {
				t.Fatalf("ParseSlotRef(%q): %v", tt.expr, err)
			}
			if got.Kind != tt.want.Kind || got.Group != tt.want.Group ||
				got.Stage != tt.want.Stage || got.Index != tt.want.Index {
				t.Errorf("ParseSlotRef(%q) = %+v, want %+v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseSlotRefBestThird(t *testing.T) {
	got, err := ParseSlotRef("3rd A/B/F/G")
	if err != nil {
		t.Fatalf("ParseSlotRef: %v", err)
	}
	if got.Kind != SlotBestThird {
		t.Fatalf("kind = %v, want SlotBestThird", got.Kind)
	}
	if len(got.Groups) != 4 || got.Groups[0] != "A" || got.Groups[3] != "G" {
		t.Errorf("groups = %v, want [A B F G]", got.Groups)
	}
}

func TestParseSlotRefRejectsMalformed(t *testing.T) {
	exprs := []string{
		"",
		"Winner",
		"Winner AB",
		"Champion A",
		"Winner XX M1",
		"Winner R32 3",
		"Winner R32 M0",
		"Winner R32 M17",
		"Loser R32",
		"3rd A/b/C",
	}
	for _, expr := range exprs {
		if _, err := ParseSlotRef(expr); err == nil {
			t.Errorf("ParseSlotRef(%q): expected error", expr)
		}
	}
}

func TestSlotRefString(t *testing.T) {
	exprs := []string{"Winner A", "Runner-up B", "3rd A/B/F/G", "Winner R32 M3", "Loser SF M2"}
	for _, expr := range exprs {
		ref, err := ParseSlotRef(expr)
		if err != nil {
			t.Fatalf("ParseSlotRef(%q): %v", expr, err)
		}
		if ref.String() != expr {
			t.Errorf("round trip of %q = %q", expr, ref.String())
		}
	}
}
