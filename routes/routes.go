package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-scheduler/handlers"
	"github.com/Dosada05/tournament-scheduler/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-scheduler/docs" // swagger spec
)

// Options configure the cross-cutting middleware.
type Options struct {
	Logger            *slog.Logger
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type Handlers struct {
	Health        *handlers.HealthHandler
	Groups        *handlers.GroupHandler
	Configuration *handlers.ConfigurationHandler
	Schedule      *handlers.ScheduleHandler
	MatchEvents   *handlers.MatchEventHandler
	WebSocket     *handlers.WebSocketHandler
}

func SetupRoutes(r chi.Router, h Handlers, opts Options) {
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Websocket без лимита: соединение долгоживущее.
	r.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	r.Group(func(r chi.Router) {
		if opts.RateLimitRequests > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitRequests, opts.RateLimitWindow))
		}

		r.Route("/groups", func(r chi.Router) {
			r.Post("/assignments", h.Groups.GenerateAssignments)
			r.Post("/validate", h.Groups.ValidateConfiguration)
		})

		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Route("/configuration", func(r chi.Router) {
				r.Get("/", h.Configuration.GetConfiguration)
				r.Post("/", h.Configuration.CreateConfiguration)
				r.Put("/", h.Configuration.UpdateConfiguration)
				r.Delete("/", h.Configuration.DeleteConfiguration)
			})

			r.Get("/overview", h.Schedule.GetOverview)

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", h.Schedule.GetTournamentMatches)
				r.Post("/", h.Schedule.CreateTournamentMatches)
				r.Delete("/", h.Schedule.DeleteTournamentMatches)
			})

			r.Route("/fixtures", func(r chi.Router) {
				r.Post("/", h.Schedule.SaveFixtures)
				r.Delete("/", h.Schedule.DeleteFixtures)
				r.Post("/generate", h.Schedule.GenerateFixtures)
			})

			r.Get("/schedule/snapshots", h.Schedule.ListSnapshots)
			r.Post("/schedule/export", h.Schedule.ExportSchedule)
		})

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", h.Schedule.GetMatch)
			r.Put("/", h.Schedule.UpdateMatch)
			r.Delete("/", h.Schedule.DeleteMatch)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.MatchEvents.ListEvents)
				r.Post("/", h.MatchEvents.CreateEvent)
				r.Get("/{eventID}", h.MatchEvents.GetEvent)
				r.Put("/{eventID}", h.MatchEvents.UpdateEvent)
				r.Delete("/{eventID}", h.MatchEvents.DeleteEvent)
			})
		})

		r.Get("/teams/{teamID}/events", h.MatchEvents.ListTeamEvents)

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/normalize", h.Schedule.NormalizeSchedule)
			r.Get("/snapshots/{snapshotID}", h.Schedule.GetSnapshot)
			r.Delete("/snapshots/{snapshotID}", h.Schedule.DeleteSnapshot)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
