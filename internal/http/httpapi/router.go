package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"medishare/internal/http/handlers"
	"medishare/internal/middleware"
)

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(app *handlers.App, logger zerolog.Logger, allowedOrigins []string, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger(logger, lookup),
		middleware.CORS(allowedOrigins),
		chimiddleware.Recoverer,
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
	})

	r.Route("/v1/accounts", func(r chi.Router) {
		r.Delete("/{id}", app.AccountDelete)
		r.Get("/{id}/donations", app.DonationsByAccount)
	})

	r.Route("/v1/donations", func(r chi.Router) {
		r.Post("/", app.DonationsCreate)
		r.Get("/", app.DonationsList)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
