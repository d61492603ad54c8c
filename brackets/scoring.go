package brackets

import "github.com/Dosada05/tournament-predictor/models"

// Scoring rules for one prediction against one actual result:
//
//	exact score pair           -> 3 points
//	else same three-way sign   -> 1 point
//	knockout: implied advancing side matches the actual one -> +1 point
//
// The knockout bonus stacks on top of either of the first two awards.
//
// A knockout match cannot end level, so a level score pair there is an
// outcome prediction, not an exact one: it earns the outcome point and
// leaves the shootout call to the bonus rule.
func Score(stage models.Stage, actual, predicted Result) int {
	points := 0

	exact := predicted.HomeGoals == actual.HomeGoals && predicted.AwayGoals == actual.AwayGoals
	if exact && !(stage.IsKnockout() && actual.Outcome() == 0) {
		points = 3
	} else if predicted.Outcome() == actual.Outcome() {
		points = 1
	}

	if stage.IsKnockout() {
		predictedSide := predicted.AdvancingSide()
		actualSide := actual.AdvancingSide()
		if predictedSide != "" && predictedSide == actualSide {
			points++
		}
	}

	return points
}
