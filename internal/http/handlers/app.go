package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"medishare/internal/domain"
	"medishare/internal/service"
)

// Pinger reports storage reachability for the health endpoint.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App bundles the handler dependencies.
type App struct {
	Identity *service.IdentityService
	Ledger   *service.LedgerService
	DB       Pinger
	Logger   zerolog.Logger
	Validate *validator.Validate
}

func NewApp(identity *service.IdentityService, ledger *service.LedgerService, db Pinger, logger zerolog.Logger) *App {
	return &App{
		Identity: identity,
		Ledger:   ledger,
		DB:       db,
		Logger:   logger,
		Validate: validator.New(),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// domainError translates service errors into HTTP responses. Unrecognized
// errors are logged and surfaced as a generic storage failure, never
// swallowed.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		a.error(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	default:
		a.Logger.Error().Err(err).Msg("storage failure")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
