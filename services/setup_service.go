package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
)

// seedEntry is one roster line of the default tournament template.
type seedEntry struct {
	name  string
	code  string
	group string
}

// defaultRoster is the 48-team template used when the database is empty.
// Четыре команды в каждой из двенадцати групп.
var defaultRoster = []seedEntry{
	{"Mexico", "MEX", "A"}, {"Poland", "POL", "A"}, {"Senegal", "SEN", "A"}, {"South Korea", "KOR", "A"},
	{"Canada", "CAN", "B"}, {"Switzerland", "SUI", "B"}, {"Ghana", "GHA", "B"}, {"Ecuador", "ECU", "B"},
	{"United States", "USA", "C"}, {"Denmark", "DEN", "C"}, {"Tunisia", "TUN", "C"}, {"Australia", "AUS", "C"},
	{"Argentina", "ARG", "D"}, {"Nigeria", "NGA", "D"}, {"Serbia", "SRB", "D"}, {"New Zealand", "NZL", "D"},
	{"Brazil", "BRA", "E"}, {"Croatia", "CRO", "E"}, {"Ivory Coast", "CIV", "E"}, {"Saudi Arabia", "KSA", "E"},
	{"France", "FRA", "F"}, {"Colombia", "COL", "F"}, {"Egypt", "EGY", "F"}, {"Uzbekistan", "UZB", "F"},
	{"Spain", "ESP", "G"}, {"Japan", "JPN", "G"}, {"Cameroon", "CMR", "G"}, {"Panama", "PAN", "G"},
	{"England", "ENG", "H"}, {"Uruguay", "URU", "H"}, {"Algeria", "ALG", "H"}, {"Jordan", "JOR", "H"},
	{"Germany", "GER", "I"}, {"Morocco", "MAR", "I"}, {"Chile", "CHI", "I"}, {"Qatar", "QAT", "I"},
	{"Portugal", "POR", "J"}, {"Ukraine", "UKR", "J"}, {"Iran", "IRN", "J"}, {"Honduras", "HON", "J"},
	{"Netherlands", "NED", "K"}, {"Austria", "AUT", "K"}, {"Peru", "PER", "K"}, {"South Africa", "RSA", "K"},
	{"Belgium", "BEL", "L"}, {"Norway", "NOR", "L"}, {"Paraguay", "PAR", "L"}, {"Mali", "MLI", "L"},
}

type SetupService interface {
	SeedFixture(ctx context.Context, start time.Time) error
}

type setupService struct {
	db        *sql.DB
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewSetupService(db *sql.DB, teamRepo repositories.TeamRepository, matchRepo repositories.MatchRepository, logger *slog.Logger) SetupService {
	return &setupService{
		db:        db,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

// SeedFixture заполняет пустую базу шаблонным турниром: 48 команд и
// полная сетка из 104 матчей. Если матчи уже есть, ничего не делает.
func (s *setupService) SeedFixture(ctx context.Context, start time.Time) (txErr error) {
	count, err := s.matchRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count matches: %w", err)
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "Fixture already present, skipping seed", slog.Int("matches", count))
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = tx.Rollback()
		} else {
			txErr = tx.Commit()
		}
	}()

	teams := make([]*models.Team, 0, len(defaultRoster))
	for _, entry := range defaultRoster {
		group := entry.group
		team := &models.Team{
			Name:  entry.name,
			Code:  entry.code,
			Group: &group,
		}
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return fmt.Errorf("failed to create team %q: %w", entry.name, err)
		}
		teams = append(teams, team)
	}

	matches, err := brackets.GenerateFixture(brackets.FixtureParams{
		Teams:   teams,
		Start:   start,
		Spacing: 3 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to generate fixture: %w", err)
	}
	for _, match := range matches {
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to create match %d: %w", match.Number, err)
		}
	}

	s.logger.InfoContext(ctx, "Seeded tournament fixture",
		slog.Int("teams", len(teams)), slog.Int("matches", len(matches)))
	return nil
}
