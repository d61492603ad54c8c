package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
)

type ResultInput struct {
	MatchNumber int          `json:"match_number"`
	HomeScore   int          `json:"home_score"`
	AwayScore   int          `json:"away_score"`
	WinnerSide  *models.Side `json:"winner_side,omitempty"`
}

// BulkResultOutcome reports one item of a bulk submission. Later items may
// depend on earlier ones, so the caller gets told exactly which succeeded.
type BulkResultOutcome struct {
	MatchNumber int    `json:"match_number"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
}

type ResultService interface {
	// SubmitResult records an official result, advances the bracket and
	// recomputes every prediction's points for that match. Re-submitting
	// the identical result is an idempotent no-op; a different result is a
	// correction and reruns the same full recompute path.
	SubmitResult(ctx context.Context, input ResultInput) error
	SubmitBulkResults(ctx context.Context, inputs []ResultInput) ([]BulkResultOutcome, error)
	// RecomputeBracket re-resolves every knockout slot from current
	// official results. Safe to call repeatedly; converges to the same
	// state.
	RecomputeBracket(ctx context.Context) error
}

type resultService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	predictionRepo repositories.PredictionRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewResultService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	predictionRepo repositories.PredictionRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:             db,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		predictionRepo: predictionRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *resultService) SubmitResult(ctx context.Context, input ResultInput) error {
	match, err := s.matchRepo.GetByNumber(ctx, input.MatchNumber)
	if err != nil {
		return mapRepoNotFound(err, repositories.ErrMatchNotFound, ErrMatchNotFound)
	}

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return ErrNegativeScore
	}
	if !validSide(input.WinnerSide) {
		return ErrInvalidSide
	}
	level := input.HomeScore == input.AwayScore
	if match.Stage.IsKnockout() && level && input.WinnerSide == nil {
		return ErrWinnerRequired
	}
	if input.WinnerSide != nil && (!match.Stage.IsKnockout() || !level) {
		return ErrWinnerNotAllowed
	}

	if match.HasResult() &&
		*match.HomeScore == input.HomeScore &&
		*match.AwayScore == input.AwayScore &&
		sidesEqual(match.WinnerSide, input.WinnerSide) {
		s.logger.Info("identical result re-submitted, nothing to do",
			slog.Int("match", input.MatchNumber))
		return nil
	}
	correction := match.HasResult()

	result := brackets.Result{HomeGoals: input.HomeScore, AwayGoals: input.AwayScore}
	if input.WinnerSide != nil {
		result.Winner = *input.WinnerSide
	}

	if err := s.recordAndScore(ctx, match, input, result); err != nil {
		return err
	}

	// Knockout winners cascade immediately; everything else converges on
	// the full rebuild pass that follows either way.
	if match.Stage.IsKnockout() {
		if err := s.advanceWinner(ctx, match, result); err != nil {
			return err
		}
	}
	if err := s.RecomputeBracket(ctx); err != nil {
		return err
	}

	s.logger.Info("official result recorded",
		slog.Int("match", input.MatchNumber),
		slog.Int("home", input.HomeScore),
		slog.Int("away", input.AwayScore),
		slog.Bool("correction", correction))

	s.hub.BroadcastToRoom(brackets.BracketRoom, brackets.Event{
		Type: brackets.EventResultRecorded,
		Payload: map[string]interface{}{
			"match_number": input.MatchNumber,
			"home_score":   input.HomeScore,
			"away_score":   input.AwayScore,
			"correction":   correction,
		},
	})
	return nil
}

// recordAndScore persists the result and replaces the awarded points of
// every prediction on the match in one transaction. Points are always a
// full replace, never a delta, so corrections and races over the same
// result converge.
func (s *resultService) recordAndScore(ctx context.Context, match *models.Match, input ResultInput, result brackets.Result) (txErr error) {
	predictions, err := s.predictionRepo.ListByMatch(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("failed to load predictions for match %d: %w", match.Number, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = s.matchRepo.UpdateResult(ctx, tx, match.Number, input.HomeScore, input.AwayScore, input.WinnerSide)
	if txErr != nil {
		return txErr
	}

	for _, prediction := range predictions {
		predicted := brackets.Result{HomeGoals: prediction.HomeGoals, AwayGoals: prediction.AwayGoals}
		if prediction.WinnerSide != nil {
			predicted.Winner = *prediction.WinnerSide
		}
		points := brackets.Score(match.Stage, result, predicted)
		if txErr = s.predictionRepo.UpdatePoints(ctx, tx, prediction.ID, points); txErr != nil {
			return txErr
		}
	}

	return nil
}

// advanceWinner writes the winner into the destination slot given by the
// addressing scheme, and for semifinals also routes the loser into the
// third-place match. No-op while the match's own occupants are unknown.
func (s *resultService) advanceWinner(ctx context.Context, match *models.Match, result brackets.Result) error {
	if match.HomeTeamID == nil || match.AwayTeamID == nil {
		return nil
	}

	var winner, loser int
	switch result.AdvancingSide() {
	case models.SideHome:
		winner, loser = *match.HomeTeamID, *match.AwayTeamID
	case models.SideAway:
		winner, loser = *match.AwayTeamID, *match.HomeTeamID
	default:
		return nil
	}

	if match.Stage != models.StageFinal && match.Stage != models.StageThird {
		dest, side, err := brackets.NextSlot(match.Number)
		if err != nil {
			return err
		}
		if err := s.matchRepo.UpdateSideTeam(ctx, s.db, dest, side, winner); err != nil {
			return err
		}
	}

	if match.Stage == models.StageSemi {
		dest, side, err := brackets.ThirdPlaceSlot(match.Number)
		if err != nil {
			return err
		}
		if err := s.matchRepo.UpdateSideTeam(ctx, s.db, dest, side, loser); err != nil {
			return err
		}
	}
	return nil
}

func (s *resultService) SubmitBulkResults(ctx context.Context, inputs []ResultInput) ([]BulkResultOutcome, error) {
	// Применяем по возрастанию номера матча: ранние стадии каскадируют в
	// поздние, и дубликаты обрабатываются детерминированно.
	ordered := make([]ResultInput, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MatchNumber < ordered[j].MatchNumber
	})

	outcomes := make([]BulkResultOutcome, 0, len(ordered))
	for _, input := range ordered {
		outcome := BulkResultOutcome{MatchNumber: input.MatchNumber, OK: true}
		if err := s.SubmitResult(ctx, input); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
			s.logger.Error("bulk item failed",
				slog.Int("match", input.MatchNumber), slog.Any("error", err))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *resultService) RecomputeBracket(ctx context.Context) error {
	matches, teams, err := loadTournament(ctx, s.matchRepo, s.teamRepo)
	if err != nil {
		return err
	}

	resolution, err := brackets.Resolve(matches, teams, brackets.OfficialResults(matches))
	if err != nil {
		return fmt.Errorf("bracket resolution failed: %w", err)
	}

	updated := 0
	for _, match := range matches {
		if match.Stage == models.StageGroup {
			continue
		}
		resolved := resolution.Knockout[match.Number]
		if resolved == nil {
			continue
		}
		// Write only newly determined or corrected occupants; a concrete
		// reference is never cleared back to nil.
		if resolved.HomeTeamID != nil && (match.HomeTeamID == nil || *match.HomeTeamID != *resolved.HomeTeamID) {
			if err := s.matchRepo.UpdateSideTeam(ctx, s.db, match.Number, models.SideHome, *resolved.HomeTeamID); err != nil {
				return err
			}
			updated++
		}
		if resolved.AwayTeamID != nil && (match.AwayTeamID == nil || *match.AwayTeamID != *resolved.AwayTeamID) {
			if err := s.matchRepo.UpdateSideTeam(ctx, s.db, match.Number, models.SideAway, *resolved.AwayTeamID); err != nil {
				return err
			}
			updated++
		}
	}

	if updated > 0 {
		s.logger.Info("bracket slots updated", slog.Int("slots", updated))
		s.hub.BroadcastToRoom(brackets.BracketRoom, brackets.Event{
			Type:    brackets.EventBracketUpdated,
			Payload: map[string]interface{}{"updated_slots": updated},
		})
	}
	return nil
}
