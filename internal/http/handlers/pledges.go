package handlers

import (
	"bytes"
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

type pledgeCreateRequest struct {
	Amount     int64  `json:"amount"`
	Comment    string `json:"comment"`
	Anonymous  bool   `json:"anonymous"`
	Fundraiser string `json:"fundraiser"`
}

type pledgeUpdateRequest struct {
	Comment   *string `json:"comment"`
	Anonymous *bool   `json:"anonymous"`
}

func (a *App) PledgesList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListPledges)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list pledges failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load pledges")
		return
	}
	defer rows.Close()

	viewer := a.principal(r)
	items := make([]domain.PledgeView, 0)
	for rows.Next() {
		var g domain.Pledge
		if err := scanPledge(rows, &g); err != nil {
			a.Logger.Error().Err(err).Msg("scan pledge failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load pledges")
			return
		}
		items = append(items, domain.PresentPledge(g, viewer))
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("iterate pledges failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load pledges")
		return
	}

	a.json(w, http.StatusOK, items)
}

func (a *App) PledgesCreate(w http.ResponseWriter, r *http.Request) {
	p := a.principal(r)
	if err := domain.AuthorizePledge(p, domain.ActionCreate, nil); err != nil {
		a.domainError(w, err)
		return
	}

	var req pledgeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	verr := &domain.ValidationError{}
	if req.Amount <= 0 {
		verr.Add("amount", "must be greater than zero")
	}
	if req.Fundraiser == "" {
		verr.Add("fundraiser", "is required")
	}
	if !verr.Empty() {
		a.validation(w, verr)
		return
	}

	// Resolve the target fundraiser first: a bad id is NotFound, not a
	// validation problem.
	f, err := a.loadFundraiser(r.Context(), req.Fundraiser)
	if err != nil {
		a.domainError(w, err)
		return
	}

	// The supporter comes from the authenticated principal, never the payload.
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertPledge,
		req.Amount, req.Comment, req.Anonymous, f.ID, p.UserID)
	g := domain.Pledge{
		Amount:            req.Amount,
		Comment:           req.Comment,
		Anonymous:         req.Anonymous,
		FundraiserID:      f.ID,
		SupporterID:       p.UserID,
		FundraiserOwnerID: f.OwnerID,
	}
	if err := row.Scan(&g.ID, &g.DateCreated); err != nil {
		a.Logger.Error().Err(err).Msg("insert pledge failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create pledge")
		return
	}

	a.json(w, http.StatusCreated, domain.PresentPledge(g, p))
}

func (a *App) PledgeDetail(w http.ResponseWriter, r *http.Request) {
	g, err := a.loadPledge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	a.json(w, http.StatusOK, domain.PresentPledge(*g, a.principal(r)))
}

// PledgeUpdate lets the supporter edit the comment and anonymous flag.
// Amount, fundraiser, supporter, hidden flag and timestamp are immutable here.
func (a *App) PledgeUpdate(w http.ResponseWriter, r *http.Request) {
	g, err := a.loadPledge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	p := a.principal(r)
	if err := domain.AuthorizePledge(p, domain.ActionWrite, g); err != nil {
		a.domainError(w, err)
		return
	}

	var req pledgeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	if req.Comment != nil {
		g.Comment = *req.Comment
	}
	if req.Anonymous != nil {
		g.Anonymous = *req.Anonymous
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpdatePledgeContent, g.ID, g.Comment, g.Anonymous); err != nil {
		a.Logger.Error().Err(err).Msg("update pledge failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update pledge")
		return
	}

	a.json(w, http.StatusOK, domain.PresentPledge(*g, p))
}

// PledgeHide toggles the hidden flag; only the fundraiser owner may do so,
// and the payload must carry an explicit boolean-like value.
func (a *App) PledgeHide(w http.ResponseWriter, r *http.Request) {
	g, err := a.loadPledge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	p := a.principal(r)
	if err := domain.AuthorizePledge(p, domain.ActionHideToggle, g); err != nil {
		a.domainError(w, err)
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	raw, ok := body["is_hidden_by_owner"]
	if !ok {
		a.validation(w, domain.NewValidationError("is_hidden_by_owner", "is required"))
		return
	}
	hidden, err := parseBoolLike(raw)
	if err != nil {
		a.validation(w, domain.NewValidationError("is_hidden_by_owner", "must be true or false"))
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QSetPledgeHidden, g.ID, hidden); err != nil {
		a.Logger.Error().Err(err).Msg("set pledge hidden failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update pledge")
		return
	}

	g.IsHiddenByOwner = hidden
	a.json(w, http.StatusOK, domain.PresentPledge(*g, p))
}

// PledgeClearComment empties the comment without deleting the row; the
// amount and every other field persist.
func (a *App) PledgeClearComment(w http.ResponseWriter, r *http.Request) {
	g, err := a.loadPledge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	if err := domain.AuthorizePledge(a.principal(r), domain.ActionDelete, g); err != nil {
		a.domainError(w, err)
		return
	}

	if _, err := a.SQL.Exec(r.Context(), sqlinline.QClearPledgeComment, g.ID); err != nil {
		a.Logger.Error().Err(err).Msg("clear pledge comment failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update pledge")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) loadPledge(ctx context.Context, id string) (*domain.Pledge, error) {
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectPledgeByID, id)
	var g domain.Pledge
	if err := scanPledge(row, &g); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load pledge: %w", err)
	}
	return &g, nil
}

func scanPledge(row pgx.Row, g *domain.Pledge) error {
	return row.Scan(&g.ID, &g.Amount, &g.Comment, &g.Anonymous, &g.IsHiddenByOwner,
		&g.DateCreated, &g.FundraiserID, &g.SupporterID, &g.FundraiserOwnerID)
}

// parseBoolLike accepts exactly the literal forms true/false, "true"/"false",
// "1"/"0" and 1/0. Anything else is an error rather than a guessed default.
func parseBoolLike(raw json.RawMessage) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case `true`, `"true"`, `"1"`, `1`:
		return true, nil
	case `false`, `"false"`, `"0"`, `0`:
		return false, nil
	}
	return false, fmt.Errorf("not a boolean-like value: %s", raw)
}
