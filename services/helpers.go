package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"golang.org/x/sync/errgroup"
)

// loadTournament fetches the full match list and team index in parallel.
// Every resolution pass starts from this snapshot.
func loadTournament(ctx context.Context, matchRepo repositories.MatchRepository, teamRepo repositories.TeamRepository) ([]*models.Match, map[int]*models.Team, error) {
	var (
		matches []*models.Match
		teams   []*models.Team
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = matchRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		teams, err = teamRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	index := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}
	return matches, index, nil
}

func validSide(side *models.Side) bool {
	return side == nil || *side == models.SideHome || *side == models.SideAway
}

func sidesEqual(a, b *models.Side) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func mapRepoNotFound(err, notFound, sentinel error) error {
	if errors.Is(err, notFound) {
		return sentinel
	}
	return err
}
