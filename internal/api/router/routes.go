package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/Priiiyaa/Gratify/internal/api/handler"
	"github.com/Priiiyaa/Gratify/internal/api/middleware"
	"github.com/Priiiyaa/Gratify/internal/auth"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"go.uber.org/zap"
)

type Handlers struct {
	User        *handler.UserHandler
	Food        *handler.FoodHandler
	Reservation *handler.ReservationHandler
	UserStats   *handler.UserStatsHandler
	Login       *handler.LoginHandler
}

// New assembles the API route table. Write paths on users and foods sit behind
// bearer-token verification; the remaining routes are open, matching the
// original surface.
func New(h Handlers, verifier auth.Verifier, mm *metrics.MetricsManager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	if mm != nil {
		r.Use(middleware.Metrics(mm))
	}

	authenticated := middleware.Authenticate(verifier, logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login.Login)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.User.List)
			r.Delete("/{id}", h.User.Delete)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.User.Create)
				r.Get("/me", h.User.Me)
				r.Get("/{uid}", h.User.GetByUID)
				r.Put("/{uid}", h.User.Update)
			})
		})

		r.Route("/foods", func(r chi.Router) {
			r.Get("/", h.Food.List)
			r.Get("/expiryAfterToday", h.Food.ExpiringAfterToday)
			r.Get("/ranked", h.Food.Ranked)
			r.Get("/{id}", h.Food.Get)
			r.Put("/{id}", h.Food.Update)
			r.Delete("/{id}", h.Food.Delete)
			r.Post("/{id}/comments", h.Food.AddComment)
			r.Delete("/{id}/comments/{commentId}", h.Food.RemoveComment)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.Food.Create)
				r.Post("/{id}/photo", h.Food.UploadPhoto)
			})
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", h.Reservation.Create)
			r.Get("/", h.Reservation.List)
			r.Get("/{id}", h.Reservation.Get)
			r.Put("/{id}", h.Reservation.Update)
			r.Delete("/{id}", h.Reservation.Delete)
		})

		r.Route("/userStats", func(r chi.Router) {
			r.Post("/", h.UserStats.Create)
			r.Get("/", h.UserStats.List)
			r.Get("/{id}", h.UserStats.Get)
			r.Put("/{id}", h.UserStats.Update)
			r.Delete("/{id}", h.UserStats.Delete)
		})

		r.Get("/leaderboard", h.UserStats.Leaderboard)
	})

	return r
}
