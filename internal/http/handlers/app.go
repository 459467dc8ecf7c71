package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
)

// App carries the dependencies shared by all handlers.
type App struct {
	SQL        infra.SQLExecutor
	Logger     zerolog.Logger
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewApp(sqlExec infra.SQLExecutor, logger zerolog.Logger, cfg *infra.Config) *App {
	return &App{
		SQL:        sqlExec,
		Logger:     logger,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{"error": code, "message": message})
}

func (a *App) validation(w http.ResponseWriter, verr *domain.ValidationError) {
	a.json(w, http.StatusBadRequest, map[string]any{
		"error":   "validation",
		"message": "invalid input",
		"fields":  verr.Fields,
	})
}

// domainError translates sentinel errors from loads and authorization checks
// into the matching HTTP response.
func (a *App) domainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.validation(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action")
	case errors.Is(err, domain.ErrUnauthenticated):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	default:
		a.Logger.Error().Err(err).Msg("internal error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// principal resolves the request to an authenticated identity or anonymous.
func (a *App) principal(r *http.Request) domain.Principal {
	return domain.Principal{UserID: middleware.UserIDFromContext(r.Context())}
}
