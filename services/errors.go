package services

import "errors"

// Общие ошибки сервисного слоя, маппятся на HTTP в handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Результаты и валидация
	ErrMatchNotFound      = errors.New("match not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrNegativeScore      = errors.New("scores must be non-negative")
	ErrWinnerRequired     = errors.New("declared winner side is required for a level knockout score")
	ErrWinnerNotAllowed   = errors.New("declared winner side is only valid for a level knockout score")
	ErrPredictionsLocked  = errors.New("predictions for this match are locked")
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrInvalidSide        = errors.New("winner side must be home or away")
	ErrFlagContentType    = errors.New("flag must be a png, jpeg or svg image")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email or nickname is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrUserNotFound           = errors.New("user not found")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
)
