package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"github.com/Dosada05/tournament-predictor/storage"
)

type TeamService interface {
	List(ctx context.Context) ([]*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	UploadFlag(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		populateTeamFlagURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoNotFound(err, repositories.ErrTeamNotFound, ErrTeamNotFound)
	}
	populateTeamFlagURL(team, s.uploader)
	return team, nil
}

func (s *teamService) UploadFlag(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapRepoNotFound(err, repositories.ErrTeamNotFound, ErrTeamNotFound)
	}

	ext, err := flagExtension(contentType)
	if err != nil {
		return nil, ErrFlagContentType
	}

	key := fmt.Sprintf("flags/team_%d%s", teamID, ext)
	oldKey := team.FlagKey

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload flag for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateFlagKey(ctx, teamID, &key); err != nil {
		return nil, mapRepoNotFound(err, repositories.ErrTeamNotFound, ErrTeamNotFound)
	}

	// Старый файл с другим расширением больше никем не используется.
	if oldKey != nil && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete previous team flag",
				slog.Int("team_id", teamID), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	team.FlagKey = &key
	populateTeamFlagURL(team, s.uploader)
	return team, nil
}

func populateTeamFlagURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.FlagKey != nil && *team.FlagKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.FlagKey)
		if url != "" {
			team.FlagURL = &url
		}
	}
}

func flagExtension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/svg+xml":
		return ".svg", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported flag content type: %q", contentType)
	}
}
