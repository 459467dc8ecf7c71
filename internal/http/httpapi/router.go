package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter builds the route table. Reads are public; every mutation sits
// behind RequireUser so unauthenticated writes fail before any object lookup.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.Authenticate(cfg.JWTSecret),
	)

	r.Get("/healthz", app.Health)

	r.Post("/users", app.Register)
	r.Post("/login", app.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/users/me", app.Me)
	})

	r.Route("/fundraisers", func(r chi.Router) {
		r.Get("/", app.FundraisersList)
		r.Get("/{id}", app.FundraiserDetail)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/", app.FundraisersCreate)
			r.Put("/{id}", app.FundraiserUpdate)
			r.Delete("/{id}", app.FundraiserDelete)
		})
	})

	r.Route("/pledges", func(r chi.Router) {
		r.Get("/", app.PledgesList)
		r.Get("/{id}", app.PledgeDetail)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/", app.PledgesCreate)
			r.Put("/{id}", app.PledgeUpdate)
			r.Patch("/{id}", app.PledgeHide)
			r.Delete("/{id}", app.PledgeClearComment)
		})
	})

	return r
}
