package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
)

// In-memory repositories for service tests. Only what the tests touch is
// implemented with real behavior; the rest returns zero values.

type fakeMatchRepo struct {
	byNumber map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{byNumber: make(map[int]*models.Match)}
	for _, m := range matches {
		repo.byNumber[m.Number] = m
	}
	return repo
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.byNumber[match.Number] = match
	return nil
}

func (r *fakeMatchRepo) GetByNumber(ctx context.Context, number int) (*models.Match, error) {
	match, ok := r.byNumber[number]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

func (r *fakeMatchRepo) List(ctx context.Context) ([]*models.Match, error) {
	matches := make([]*models.Match, 0, len(r.byNumber))
	for _, m := range r.byNumber {
		matches = append(matches, m)
	}
	return matches, nil
}

func (r *fakeMatchRepo) Count(ctx context.Context) (int, error) {
	return len(r.byNumber), nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, number int, homeScore, awayScore int, winnerSide *models.Side) error {
	match, ok := r.byNumber[number]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.WinnerSide = winnerSide
	return nil
}

func (r *fakeMatchRepo) UpdateSideTeam(ctx context.Context, exec repositories.SQLExecutor, number int, side models.Side, teamID int) error {
	match, ok := r.byNumber[number]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if side == models.SideHome {
		match.HomeTeamID = &teamID
	} else {
		match.AwayTeamID = &teamID
	}
	return nil
}

type fakeTeamRepo struct {
	byID map[int]*models.Team
}

func (r *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	if r.byID == nil {
		r.byID = make(map[int]*models.Team)
	}
	team.ID = len(r.byID) + 1
	r.byID[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(r.byID))
	for _, t := range r.byID {
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *fakeTeamRepo) UpdateFlagKey(ctx context.Context, id int, flagKey *string) error {
	team, ok := r.byID[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.FlagKey = flagKey
	return nil
}

type fakePredictionRepo struct {
	stored []*models.Prediction
}

func (r *fakePredictionRepo) Upsert(ctx context.Context, prediction *models.Prediction) error {
	for i, p := range r.stored {
		if p.UserID == prediction.UserID && p.MatchID == prediction.MatchID {
			prediction.ID = p.ID
			r.stored[i] = prediction
			return nil
		}
	}
	prediction.ID = len(r.stored) + 1
	r.stored = append(r.stored, prediction)
	return nil
}

func (r *fakePredictionRepo) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	for _, p := range r.stored {
		if p.UserID == userID && p.MatchID == matchID {
			return p, nil
		}
	}
	return nil, repositories.ErrPredictionNotFound
}

func (r *fakePredictionRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error) {
	var out []*models.Prediction
	for _, p := range r.stored {
		if p.MatchID == matchID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePredictionRepo) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	var out []*models.Prediction
	for _, p := range r.stored {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePredictionRepo) UpdatePoints(ctx context.Context, exec repositories.SQLExecutor, id int, points int) error {
	for _, p := range r.stored {
		if p.ID == id {
			v := points
			p.AwardedPoints = &v
			return nil
		}
	}
	return repositories.ErrPredictionNotFound
}

func (r *fakePredictionRepo) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	return nil, nil
}

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
