package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
)

type PredictionInput struct {
	MatchNumber int          `json:"match_number"`
	HomeGoals   int          `json:"home_goals"`
	AwayGoals   int          `json:"away_goals"`
	WinnerSide  *models.Side `json:"winner_side,omitempty"`
}

type PredictionService interface {
	// Upsert creates or replaces the caller's prediction for a match.
	// Rejected once the match has kicked off.
	Upsert(ctx context.Context, userID int, input PredictionInput) (*models.Prediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error)
	// AnnounceLockedMatches broadcasts a lock notification for matches
	// whose kickoff fell inside (since, until]. Returns the affected
	// match numbers.
	AnnounceLockedMatches(ctx context.Context, since, until time.Time) ([]int, error)
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	matchRepo      repositories.MatchRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *predictionService) Upsert(ctx context.Context, userID int, input PredictionInput) (*models.Prediction, error) {
	match, err := s.matchRepo.GetByNumber(ctx, input.MatchNumber)
	if err != nil {
		return nil, mapRepoNotFound(err, repositories.ErrMatchNotFound, ErrMatchNotFound)
	}

	if time.Now().After(match.KickoffTime) {
		return nil, ErrPredictionsLocked
	}
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrNegativeScore
	}
	if !validSide(input.WinnerSide) {
		return nil, ErrInvalidSide
	}
	level := input.HomeGoals == input.AwayGoals
	if match.Stage.IsKnockout() && level && input.WinnerSide == nil {
		return nil, ErrWinnerRequired
	}
	if input.WinnerSide != nil && (!match.Stage.IsKnockout() || !level) {
		return nil, ErrWinnerNotAllowed
	}

	prediction := &models.Prediction{
		UserID:     userID,
		MatchID:    match.ID,
		HomeGoals:  input.HomeGoals,
		AwayGoals:  input.AwayGoals,
		WinnerSide: input.WinnerSide,
	}
	if err := s.predictionRepo.Upsert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}
	prediction.Match = match
	return prediction, nil
}

func (s *predictionService) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	byID := make(map[int]*models.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	for _, p := range predictions {
		p.Match = byID[p.MatchID]
	}
	return predictions, nil
}

func (s *predictionService) AnnounceLockedMatches(ctx context.Context, since, until time.Time) ([]int, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	var locked []int
	for _, m := range matches {
		if m.KickoffTime.After(since) && !m.KickoffTime.After(until) {
			locked = append(locked, m.Number)
		}
	}
	if len(locked) == 0 {
		return nil, nil
	}

	s.logger.Info("predictions locked", slog.Any("matches", locked))
	s.hub.BroadcastToRoom(brackets.BracketRoom, brackets.Event{
		Type:    brackets.EventPredictionsLocked,
		Payload: map[string]interface{}{"match_numbers": locked},
	})
	return locked, nil
}
