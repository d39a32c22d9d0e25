package routes

import (
	"github.com/dartcorner/liveboard/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	groupHandler *handlers.GroupHandler,
	statHandler *handlers.StatHandler,
	statusHandler *handlers.StatusHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", statusHandler.Health)

	router.Route("/api", func(r chi.Router) {
		r.Get("/scraper/status", statusHandler.ScraperStatus)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListTournaments)
			r.Post("/", tournamentHandler.CreateTournament)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetTournament)
				r.Put("/", tournamentHandler.UpdateTournament)
				r.Delete("/", tournamentHandler.DeleteTournament)

				r.Get("/matches", matchHandler.ListMatches)
				r.Get("/groups", groupHandler.ListGroups)
				r.Get("/stats", statHandler.ListStats)
				r.Post("/stats/refresh", statHandler.RefreshStats)
			})
		})
	})

	router.Get("/ws/tournaments/{id}", webSocketHandler.Subscribe)
}
