package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"server/internal/middleware"
	"server/internal/sqlinline"
)

func TestRegisterValidation(t *testing.T) {
	for _, tc := range []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing username", `{"email": "a@example.com", "password": "longenough"}`, "username"},
		{"bad email", `{"username": "alice", "email": "nope", "password": "longenough"}`, "email"},
		{"short password", `{"username": "alice", "email": "a@example.com", "password": "short"}`, "password"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeSQL{})

			req := authedRequest("POST", "/users", tc.body, "")
			rr := httptest.NewRecorder()
			app.Register(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var payload struct {
				Fields map[string]string `json:"fields"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.Fields[tc.wantField] == "" {
				t.Fatalf("expected detail for %q, got %#v", tc.wantField, payload.Fields)
			}
		})
	}
}

func TestRegisterCanonicalizesUsername(t *testing.T) {
	sql := &fakeSQL{rows: map[string][][]any{
		sqlinline.QInsertUser: {{"u1", testCreated}},
	}}
	app := newTestApp(sql)

	req := authedRequest("POST", "/users", `{"username": "  Alice ", "email": "a@example.com", "password": "longenough"}`, "")
	rr := httptest.NewRecorder()
	app.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var user userDTO
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username = %q, want alice", user.Username)
	}
}

func loginRows(t *testing.T, password string) map[string][][]any {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return map[string][][]any{
		sqlinline.QSelectUserByUsername: {{"u1", "alice", "a@example.com", string(hash)}},
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	app := newTestApp(&fakeSQL{rows: loginRows(t, "longenough")})

	req := authedRequest("POST", "/login", `{"username": "alice", "password": "longenough"}`, "")
	rr := httptest.NewRecorder()
	app.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	userID, err := middleware.VerifyToken(app.JWTSecret, payload.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("token subject = %q, want u1", userID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(&fakeSQL{rows: loginRows(t, "longenough")})

	req := authedRequest("POST", "/login", `{"username": "alice", "password": "wrong-password"}`, "")
	rr := httptest.NewRecorder()
	app.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	app := newTestApp(&fakeSQL{})

	req := authedRequest("POST", "/login", `{"username": "ghost", "password": "whatever1"}`, "")
	rr := httptest.NewRecorder()
	app.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	sql := &fakeSQL{rows: map[string][][]any{
		sqlinline.QSelectUserByID: {{"u1", "alice", "a@example.com", testCreated}},
	}}
	app := newTestApp(sql)

	req := authedRequest("GET", "/users/me", "", "u1")
	rr := httptest.NewRecorder()
	app.Me(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var user userDTO
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "u1" || user.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", user)
	}
}
