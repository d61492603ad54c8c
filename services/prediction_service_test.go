package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
)

func sidePtr(s models.Side) *models.Side { return &s }

func upcomingMatch(number int, stage models.Stage) *models.Match {
	return &models.Match{
		ID:          number,
		Number:      number,
		Stage:       stage,
		KickoffTime: time.Now().Add(time.Hour),
	}
}

func TestPredictionUpsertValidation(t *testing.T) {
	tests := []struct {
		name    string
		stage   models.Stage
		input   PredictionInput
		wantErr error
	}{
		{
			name:  "group draw without winner is fine",
			stage: models.StageGroup,
			input: PredictionInput{MatchNumber: 1, HomeGoals: 1, AwayGoals: 1},
		},
		{
			name:    "negative score rejected",
			stage:   models.StageGroup,
			input:   PredictionInput{MatchNumber: 1, HomeGoals: -1, AwayGoals: 0},
			wantErr: ErrNegativeScore,
		},
		{
			name:    "level knockout needs a winner",
			stage:   models.StageRound32,
			input:   PredictionInput{MatchNumber: 1, HomeGoals: 2, AwayGoals: 2},
			wantErr: ErrWinnerRequired,
		},
		{
			name:  "level knockout with winner accepted",
			stage: models.StageRound32,
			input: PredictionInput{MatchNumber: 1, HomeGoals: 2, AwayGoals: 2, WinnerSide: sidePtr(models.SideAway)},
		},
		{
			name:    "winner on decisive knockout rejected",
			stage:   models.StageRound32,
			input:   PredictionInput{MatchNumber: 1, HomeGoals: 2, AwayGoals: 0, WinnerSide: sidePtr(models.SideHome)},
			wantErr: ErrWinnerNotAllowed,
		},
		{
			name:    "winner on group match rejected",
			stage:   models.StageGroup,
			input:   PredictionInput{MatchNumber: 1, HomeGoals: 1, AwayGoals: 1, WinnerSide: sidePtr(models.SideHome)},
			wantErr: ErrWinnerNotAllowed,
		},
		{
			name:    "unknown match",
			stage:   models.StageGroup,
			input:   PredictionInput{MatchNumber: 99, HomeGoals: 1, AwayGoals: 0},
			wantErr: ErrMatchNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchRepo := newFakeMatchRepo(upcomingMatch(1, tt.stage))
			svc := NewPredictionService(&fakePredictionRepo{}, matchRepo, brackets.NewHub(), discardLogger())

			_, err := svc.Upsert(context.Background(), 7, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Upsert error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPredictionUpsertLockedAfterKickoff(t *testing.T) {
	match := upcomingMatch(5, models.StageGroup)
	match.KickoffTime = time.Now().Add(-time.Minute)
	svc := NewPredictionService(&fakePredictionRepo{}, newFakeMatchRepo(match), brackets.NewHub(), discardLogger())

	_, err := svc.Upsert(context.Background(), 7, PredictionInput{MatchNumber: 5, HomeGoals: 1, AwayGoals: 0})
	if !errors.Is(err, ErrPredictionsLocked) {
		t.Fatalf("Upsert error = %v, want ErrPredictionsLocked", err)
	}
}

func TestPredictionUpsertReplacesExisting(t *testing.T) {
	predictionRepo := &fakePredictionRepo{}
	svc := NewPredictionService(predictionRepo, newFakeMatchRepo(upcomingMatch(3, models.StageGroup)), brackets.NewHub(), discardLogger())

	if _, err := svc.Upsert(context.Background(), 7, PredictionInput{MatchNumber: 3, HomeGoals: 1, AwayGoals: 0}); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if _, err := svc.Upsert(context.Background(), 7, PredictionInput{MatchNumber: 3, HomeGoals: 0, AwayGoals: 2}); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	stored, err := predictionRepo.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("got %d stored predictions, want 1", len(stored))
	}
	if stored[0].HomeGoals != 0 || stored[0].AwayGoals != 2 {
		t.Errorf("stored prediction = %d:%d, want 0:2", stored[0].HomeGoals, stored[0].AwayGoals)
	}
}

func TestAnnounceLockedMatchesWindow(t *testing.T) {
	now := time.Now()
	early := upcomingMatch(1, models.StageGroup)
	early.KickoffTime = now.Add(-2 * time.Hour)
	inside := upcomingMatch(2, models.StageGroup)
	inside.KickoffTime = now.Add(-30 * time.Second)
	future := upcomingMatch(3, models.StageGroup)
	future.KickoffTime = now.Add(time.Hour)

	svc := NewPredictionService(&fakePredictionRepo{}, newFakeMatchRepo(early, inside, future), brackets.NewHub(), discardLogger())

	locked, err := svc.AnnounceLockedMatches(context.Background(), now.Add(-time.Minute), now)
	if err != nil {
		t.Fatalf("AnnounceLockedMatches: %v", err)
	}
	if len(locked) != 1 || locked[0] != 2 {
		t.Fatalf("locked = %v, want [2]", locked)
	}
}
