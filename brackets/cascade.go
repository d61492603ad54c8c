package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
)

// Fixed 48-team format: 12 groups of 4 (72 group matches) followed by a
// 32-team knockout. Match numbers double as bracket slot addresses.
const (
	GroupMatchCount = 72
	TotalMatchCount = 104

	BaseRound32 = 73
	BaseRound16 = 89
	BaseQuarter = 97
	BaseSemi    = 101
	BaseThird   = 103
	BaseFinal   = 104
)

var stageBases = map[models.Stage]int{
	models.StageGroup:   1,
	models.StageRound32: BaseRound32,
	models.StageRound16: BaseRound16,
	models.StageQuarter: BaseQuarter,
	models.StageSemi:    BaseSemi,
	models.StageThird:   BaseThird,
	models.StageFinal:   BaseFinal,
}

var nextStages = map[models.Stage]models.Stage{
	models.StageRound32: models.StageRound16,
	models.StageRound16: models.StageQuarter,
	models.StageQuarter: models.StageSemi,
	models.StageSemi:    models.StageFinal,
}

// StageBase returns the first match number of a stage.
func StageBase(stage models.Stage) (int, error) {
	base, ok := stageBases[stage]
	if !ok {
		return 0, fmt.Errorf("unknown stage %q", stage)
	}
	return base, nil
}

// StageOf maps an absolute match number to its stage.
func StageOf(number int) (models.Stage, error) {
	switch {
	case number >= 1 && number <= GroupMatchCount:
		return models.StageGroup, nil
	case number >= BaseRound32 && number < BaseRound16:
		return models.StageRound32, nil
	case number >= BaseRound16 && number < BaseQuarter:
		return models.StageRound16, nil
	case number >= BaseQuarter && number < BaseSemi:
		return models.StageQuarter, nil
	case number >= BaseSemi && number < BaseThird:
		return models.StageSemi, nil
	case number == BaseThird:
		return models.StageThird, nil
	case number == BaseFinal:
		return models.StageFinal, nil
	default:
		return "", fmt.Errorf("match number %d is outside the bracket (1..%d)", number, TotalMatchCount)
	}
}

// AbsoluteNumber converts a 1-based index within a stage ("R16 M3") to an
// absolute match number.
func AbsoluteNumber(stage models.Stage, index int) (int, error) {
	base, err := StageBase(stage)
	if err != nil {
		return 0, err
	}
	number := base + index - 1
	if got, err := StageOf(number); err != nil || got != stage {
		return 0, fmt.Errorf("index %d is out of range for stage %q", index, stage)
	}
	return number, nil
}

// NextSlot returns the match number and side that the winner of the given
// match advances into. The final and the third-place match have no
// destination; group matches feed the bracket through qualification, not
// through a winner cascade.
func NextSlot(number int) (int, models.Side, error) {
	stage, err := StageOf(number)
	if err != nil {
		return 0, "", err
	}
	next, ok := nextStages[stage]
	if !ok {
		return 0, "", fmt.Errorf("match %d (%s) has no winner destination", number, stage)
	}
	base := stageBases[stage]
	dest := stageBases[next] + (number-base)/2
	side := models.SideHome
	if (number-base)%2 != 0 {
		side = models.SideAway
	}
	return dest, side, nil
}

// ThirdPlaceSlot returns the slot of the third-place match that the loser
// of a semifinal occupies. Side parity follows the semifinal's own index,
// independently of the winner routing.
func ThirdPlaceSlot(number int) (int, models.Side, error) {
	stage, err := StageOf(number)
	if err != nil {
		return 0, "", err
	}
	if stage != models.StageSemi {
		return 0, "", fmt.Errorf("match %d (%s) does not route its loser anywhere", number, stage)
	}
	side := models.SideHome
	if (number-BaseSemi)%2 != 0 {
		side = models.SideAway
	}
	return BaseThird, side, nil
}
