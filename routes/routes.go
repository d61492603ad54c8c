package routes

import (
	"github.com/Dosada05/tournament-predictor/handlers"
	"github.com/Dosada05/tournament-predictor/middleware"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes вешает все маршруты приложения на переданный роутер.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	resultHandler *handlers.ResultHandler,
	predictionHandler *handlers.PredictionHandler,
	bracketHandler *handlers.BracketHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/teams", teamHandler.List)
	router.Get("/matches", bracketHandler.ListMatches)
	router.Get("/bracket", bracketHandler.GetBracket)
	router.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
	router.Get("/ws", webSocketHandler.ServeWs)

	// Маршруты, требующие аутентификации.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Put("/predictions/{matchNumber}", predictionHandler.Upsert)
		r.Get("/predictions", predictionHandler.ListOwn)
		r.Get("/bracket/speculative", bracketHandler.GetSpeculativeBracket)
	})

	// Административные маршруты.
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Post("/results", resultHandler.SubmitResult)
		r.Post("/results/bulk", resultHandler.SubmitBulkResults)
		r.Post("/teams/{id}/flag", teamHandler.UploadFlag)
	})
}
