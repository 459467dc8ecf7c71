package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/sqlinline"
	"server/internal/username"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

const pgUniqueViolation = "23505"

// Register creates an account with a bcrypt-hashed credential.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	name := username.Canonical(req.Username)
	verr := &domain.ValidationError{}
	if name == "" {
		verr.Add("username", "is required")
	}
	if !strings.Contains(req.Email, "@") {
		verr.Add("email", "must be a valid address")
	}
	if len(req.Password) < 8 {
		verr.Add("password", "must be at least 8 characters")
	}
	if !verr.Empty() {
		a.validation(w, verr)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.BcryptCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create user")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser, name, req.Email, string(hash))
	var id string
	var createdAt time.Time
	if err := row.Scan(&id, &createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			a.validation(w, domain.NewValidationError("username", "is already taken"))
			return
		}
		a.Logger.Error().Err(err).Msg("insert user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create user")
		return
	}

	a.json(w, http.StatusCreated, userDTO{ID: id, Username: name, Email: req.Email})
}

// Login exchanges credentials for a bearer token.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username and password required")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByUsername, username.Canonical(req.Username))
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("load user failed")
		a.error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := middleware.SignToken(a.JWTSecret, u.ID, a.TokenTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the authenticated user's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	p := a.principal(r)
	if p.IsAnonymous() {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, p.UserID)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}

	a.json(w, http.StatusOK, userDTO{ID: u.ID, Username: u.Username, Email: u.Email})
}
