package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/sqlinline"
)

type fundraiserCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
	Image       string `json:"image"`
	IsOpen      bool   `json:"is_open"`
}

// fundraiserUpdateRequest uses pointers so an omitted field is
// distinguishable from a zero value: omitted fields keep their stored value.
type fundraiserUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Goal        *int64  `json:"goal"`
	Image       *string `json:"image"`
	IsOpen      *bool   `json:"is_open"`
}

func (a *App) FundraisersList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListFundraisers)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list fundraisers failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load fundraisers")
		return
	}
	defer rows.Close()

	items := make([]domain.FundraiserView, 0)
	for rows.Next() {
		var f domain.Fundraiser
		if err := scanFundraiser(rows, &f); err != nil {
			a.Logger.Error().Err(err).Msg("scan fundraiser failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load fundraisers")
			return
		}
		items = append(items, domain.PresentFundraiser(f))
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("iterate fundraisers failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load fundraisers")
		return
	}

	a.json(w, http.StatusOK, items)
}

func (a *App) FundraisersCreate(w http.ResponseWriter, r *http.Request) {
	p := a.principal(r)
	if err := domain.AuthorizeFundraiser(p, domain.ActionCreate, nil); err != nil {
		a.domainError(w, err)
		return
	}

	var req fundraiserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	verr := &domain.ValidationError{}
	if req.Title == "" {
		verr.Add("title", "is required")
	}
	if req.Goal <= 0 {
		verr.Add("goal", "must be greater than zero")
	}
	if !verr.Empty() {
		a.validation(w, verr)
		return
	}

	// The owner comes from the authenticated principal, never the payload.
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertFundraiser,
		req.Title, req.Description, req.Goal, req.Image, req.IsOpen, p.UserID)
	f := domain.Fundraiser{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		Image:       req.Image,
		IsOpen:      req.IsOpen,
		OwnerID:     p.UserID,
	}
	if err := row.Scan(&f.ID, &f.DateCreated); err != nil {
		a.Logger.Error().Err(err).Msg("insert fundraiser failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create fundraiser")
		return
	}

	a.json(w, http.StatusCreated, domain.PresentFundraiser(f))
}

func (a *App) FundraiserDetail(w http.ResponseWriter, r *http.Request) {
	f, err := a.loadFundraiser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	pledges, err := a.loadPledgesForFundraiser(r.Context(), f.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load pledges failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load fundraiser")
		return
	}

	a.json(w, http.StatusOK, domain.PresentFundraiserDetail(*f, pledges, a.principal(r)))
}

func (a *App) FundraiserUpdate(w http.ResponseWriter, r *http.Request) {
	f, err := a.loadFundraiser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	if err := domain.AuthorizeFundraiser(a.principal(r), domain.ActionWrite, f); err != nil {
		a.domainError(w, err)
		return
	}

	var req fundraiserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	if req.Title != nil {
		f.Title = *req.Title
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Goal != nil {
		f.Goal = *req.Goal
	}
	if req.Image != nil {
		f.Image = *req.Image
	}
	if req.IsOpen != nil {
		f.IsOpen = *req.IsOpen
	}

	verr := &domain.ValidationError{}
	if f.Title == "" {
		verr.Add("title", "is required")
	}
	if f.Goal <= 0 {
		verr.Add("goal", "must be greater than zero")
	}
	if !verr.Empty() {
		a.validation(w, verr)
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpdateFundraiser,
		f.ID, f.Title, f.Description, f.Goal, f.Image, f.IsOpen); err != nil {
		a.Logger.Error().Err(err).Msg("update fundraiser failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update fundraiser")
		return
	}

	a.json(w, http.StatusOK, domain.PresentFundraiser(*f))
}

func (a *App) FundraiserDelete(w http.ResponseWriter, r *http.Request) {
	f, err := a.loadFundraiser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	if err := domain.AuthorizeFundraiser(a.principal(r), domain.ActionDelete, f); err != nil {
		a.domainError(w, err)
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QDeleteFundraiserCascade, f.ID); err != nil {
		a.Logger.Error().Err(err).Msg("delete fundraiser failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete fundraiser")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadFundraiser resolves existence before any authorization decision, so a
// nonexistent id yields NotFound regardless of who asks.
func (a *App) loadFundraiser(ctx context.Context, id string) (*domain.Fundraiser, error) {
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectFundraiserByID, id)
	var f domain.Fundraiser
	if err := scanFundraiser(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load fundraiser: %w", err)
	}
	return &f, nil
}

func (a *App) loadPledgesForFundraiser(ctx context.Context, fundraiserID string) ([]domain.Pledge, error) {
	rows, err := a.SQL.Query(ctx, sqlinline.QListPledgesByFundraiser, fundraiserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pledges []domain.Pledge
	for rows.Next() {
		var g domain.Pledge
		if err := scanPledge(rows, &g); err != nil {
			return nil, err
		}
		pledges = append(pledges, g)
	}
	return pledges, rows.Err()
}

func scanFundraiser(row pgx.Row, f *domain.Fundraiser) error {
	return row.Scan(&f.ID, &f.Title, &f.Description, &f.Goal, &f.Image, &f.IsOpen, &f.DateCreated, &f.OwnerID)
}
