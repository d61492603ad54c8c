package brackets

import (
	"testing"

	"github.com/Dosada05/tournament-predictor/models"
)

func TestNextSlot(t *testing.T) {
	tests := []struct {
		name     string
		number   int
		wantDest int
		wantSide models.Side
	}{
		{"first round32 match feeds home of 89", 73, 89, models.SideHome},
		{"second round32 match feeds away of 89", 74, 89, models.SideAway},
		{"last round32 match feeds away of 96", 88, 96, models.SideAway},
		{"first round16 match feeds home of 97", 89, 97, models.SideHome},
		{"last round16 match feeds away of 100", 96, 100, models.SideAway},
		{"first quarterfinal feeds home of 101", 97, 101, models.SideHome},
		{"last quarterfinal feeds away of 102", 100, 102, models.SideAway},
		{"first semifinal winner goes home in final", 101, 104, models.SideHome},
		{"second semifinal winner goes away in final", 102, 104, models.SideAway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, side, err := NextSlot(tt.number)
			if err != nil {
				t.Fatalf("NextSlot(%d): %v", tt.number, err)
			}
			if dest != tt.wantDest || side != tt.wantSide {
				t.Errorf("NextSlot(%d) = (%d, %s), want (%d, %s)",
					tt.number, dest, side, tt.wantDest, tt.wantSide)
			}
		})
	}
}

func TestNextSlotTerminalMatches(t *testing.T) {
	for _, number := range []int{1, 72, 103, 104} {
		if _, _, err := NextSlot(number); err == nil {
			t.Errorf("NextSlot(%d): expected error for match without a destination", number)
		}
	}
}

func TestThirdPlaceSlot(t *testing.T) {
	dest, side, err := ThirdPlaceSlot(101)
	if err != nil {
		t.Fatalf("ThirdPlaceSlot(101): %v", err)
	}
	if dest != 103 || side != models.SideHome {
		t.Errorf("ThirdPlaceSlot(101) = (%d, %s), want (103, home)", dest, side)
	}

	dest, side, err = ThirdPlaceSlot(102)
	if err != nil {
		t.Fatalf("ThirdPlaceSlot(102): %v", err)
	}
	if dest != 103 || side != models.SideAway {
		t.Errorf("ThirdPlaceSlot(102) = (%d, %s), want (103, away)", dest, side)
	}

	if _, _, err := ThirdPlaceSlot(97); err == nil {
		t.Error("ThirdPlaceSlot(97): expected error for non-semifinal")
	}
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		number int
		want   models.Stage
	}{
		{1, models.StageGroup},
		{72, models.StageGroup},
		{73, models.StageRound32},
		{88, models.StageRound32},
		{89, models.StageRound16},
		{96, models.StageRound16},
		{97, models.StageQuarter},
		{100, models.StageQuarter},
		{101, models.StageSemi},
		{102, models.StageSemi},
		{103, models.StageThird},
		{104, models.StageFinal},
	}
	for _, tt := range tests {
		got, err := StageOf(tt.number)
		if err != nil {
			t.Fatalf("StageOf(%d): %v", tt.number, err)
		}
		if got != tt.want {
			t.Errorf("StageOf(%d) = %s, want %s", tt.number, got, tt.want)
		}
	}

	for _, number := range []int{0, 105, -3} {
		if _, err := StageOf(number); err == nil {
			t.Errorf("StageOf(%d): expected error", number)
		}
	}
}

func TestAbsoluteNumber(t *testing.T) {
	tests := []struct {
		stage models.Stage
		index int
		want  int
	}{
		{models.StageRound32, 1, 73},
		{models.StageRound32, 16, 88},
		{models.StageRound16, 3, 91},
		{models.StageQuarter, 4, 100},
		{models.StageSemi, 2, 102},
	}
	for _, tt := range tests {
		got, err := AbsoluteNumber(tt.stage, tt.index)
		if err != nil {
			t.Fatalf("AbsoluteNumber(%s, %d): %v", tt.stage, tt.index, err)
		}
		if got != tt.want {
			t.Errorf("AbsoluteNumber(%s, %d) = %d, want %d", tt.stage, tt.index, got, tt.want)
		}
	}

	if _, err := AbsoluteNumber(models.StageRound32, 17); err == nil {
		t.Error("AbsoluteNumber(round32, 17): expected out-of-range error")
	}
	if _, err := AbsoluteNumber(models.StageSemi, 3); err == nil {
		t.Error("AbsoluteNumber(semi, 3): expected out-of-range error")
	}
}
