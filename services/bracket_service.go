package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
)

// BracketView is the resolved bracket as served to clients: group tables,
// qualifiers and the knockout grid in match order.
type BracketView struct {
	Mode           string                         `json:"mode"`
	Standings      map[string][]brackets.Standing `json:"standings"`
	CompleteGroups map[string]bool                `json:"complete_groups"`
	Qualifiers     brackets.Qualifiers            `json:"qualifiers"`
	Knockout       []*brackets.ResolvedMatch      `json:"knockout"`
	Teams          []*models.Team                 `json:"teams"`
}

type BracketService interface {
	// GetBracket resolves the bracket from official results.
	GetBracket(ctx context.Context) (*BracketView, error)
	// GetSpeculativeBracket resolves the bracket from one user's own
	// predictions. Read-only: nothing is persisted and official state is
	// never consulted as a result source.
	GetSpeculativeBracket(ctx context.Context, userID int) (*BracketView, error)
	// ListMatches returns the full schedule with team details attached
	// where the occupants are already known.
	ListMatches(ctx context.Context) ([]*models.Match, error)
}

type bracketService struct {
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	predictionRepo repositories.PredictionRepository
}

func NewBracketService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	predictionRepo repositories.PredictionRepository,
) BracketService {
	return &bracketService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		predictionRepo: predictionRepo,
	}
}

func (s *bracketService) GetBracket(ctx context.Context) (*BracketView, error) {
	matches, teams, err := loadTournament(ctx, s.matchRepo, s.teamRepo)
	if err != nil {
		return nil, err
	}
	return buildView("official", matches, teams, brackets.OfficialResults(matches))
}

func (s *bracketService) GetSpeculativeBracket(ctx context.Context, userID int) (*BracketView, error) {
	matches, teams, err := loadTournament(ctx, s.matchRepo, s.teamRepo)
	if err != nil {
		return nil, err
	}
	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions of user %d: %w", userID, err)
	}
	return buildView("speculative", matches, teams, brackets.PredictionResults(matches, predictions))
}

func (s *bracketService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, teams, err := loadTournament(ctx, s.matchRepo, s.teamRepo)
	if err != nil {
		return nil, err
	}
	for _, match := range matches {
		if match.HomeTeamID != nil {
			match.HomeTeam = teams[*match.HomeTeamID]
		}
		if match.AwayTeamID != nil {
			match.AwayTeam = teams[*match.AwayTeamID]
		}
	}
	return matches, nil
}

func buildView(mode string, matches []*models.Match, teams map[int]*models.Team, src brackets.ResultSource) (*BracketView, error) {
	resolution, err := brackets.Resolve(matches, teams, src)
	if err != nil {
		return nil, fmt.Errorf("bracket resolution failed: %w", err)
	}

	knockout := make([]*brackets.ResolvedMatch, 0, len(resolution.Knockout))
	for _, rm := range resolution.Knockout {
		knockout = append(knockout, rm)
	}
	sort.Slice(knockout, func(i, j int) bool { return knockout[i].Number < knockout[j].Number })

	teamList := make([]*models.Team, 0, len(teams))
	for _, t := range teams {
		teamList = append(teamList, t)
	}
	sort.Slice(teamList, func(i, j int) bool { return teamList[i].Name < teamList[j].Name })

	return &BracketView{
		Mode:           mode,
		Standings:      resolution.Standings,
		CompleteGroups: resolution.CompleteGroups,
		Qualifiers:     resolution.Qualifiers,
		Knockout:       knockout,
		Teams:          teamList,
	}, nil
}
