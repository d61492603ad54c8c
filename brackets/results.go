package brackets

import "github.com/Dosada05/tournament-predictor/models"

// Result is one match outcome as seen by the engine, whether it came from
// the recorded official score or from one user's prediction. Winner is the
// declared advancing side for a knockout match that finished level; it is
// empty otherwise.
type Result struct {
	HomeGoals int
	AwayGoals int
	Winner    models.Side
}

// Outcome returns the three-way comparison sign: +1 home win, -1 away win,
// 0 draw.
func (r Result) Outcome() int {
	switch {
	case r.HomeGoals > r.AwayGoals:
		return 1
	case r.HomeGoals < r.AwayGoals:
		return -1
	default:
		return 0
	}
}

// AdvancingSide returns the side this result sends through a knockout tie:
// the scoreline winner, or the declared winner when level. Empty when level
// with no declared winner.
func (r Result) AdvancingSide() models.Side {
	switch r.Outcome() {
	case 1:
		return models.SideHome
	case -1:
		return models.SideAway
	default:
		return r.Winner
	}
}

// ResultSource supplies match outcomes by match number. The authoritative
// and speculative evaluation modes differ only in which source they pass to
// Resolve.
type ResultSource interface {
	Result(matchNumber int) (Result, bool)
}

type mapSource map[int]Result

func (s mapSource) Result(matchNumber int) (Result, bool) {
	r, ok := s[matchNumber]
	return r, ok
}

// OfficialResults builds a ResultSource from recorded official scores.
func OfficialResults(matches []*models.Match) ResultSource {
	src := make(mapSource, len(matches))
	for _, m := range matches {
		if !m.HasResult() {
			continue
		}
		r := Result{HomeGoals: *m.HomeScore, AwayGoals: *m.AwayScore}
		if m.WinnerSide != nil {
			r.Winner = *m.WinnerSide
		}
		src[m.Number] = r
	}
	return src
}

// PredictionResults builds a ResultSource from one user's predictions,
// keyed by match number.
func PredictionResults(matches []*models.Match, predictions []*models.Prediction) ResultSource {
	byID := make(map[int]int, len(matches))
	for _, m := range matches {
		byID[m.ID] = m.Number
	}
	src := make(mapSource, len(predictions))
	for _, p := range predictions {
		number, ok := byID[p.MatchID]
		if !ok {
			continue
		}
		r := Result{HomeGoals: p.HomeGoals, AwayGoals: p.AwayGoals}
		if p.WinnerSide != nil {
			r.Winner = *p.WinnerSide
		}
		src[number] = r
	}
	return src
}
