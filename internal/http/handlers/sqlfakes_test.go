package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// fakeSQL serves canned rows keyed by sqlinline query constant and records
// every Exec call, so handler tests run without a database.
type fakeSQL struct {
	rows    map[string][][]any
	execs   []execCall
	execErr map[string]error
}

type execCall struct {
	query string
	args  []any
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	if err := f.execErr[query]; err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	rs := f.rows[query]
	if len(rs) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{vals: rs[0]}
}

func (f *fakeSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	return &fakeRows{rows: f.rows[query]}, nil
}

func (f *fakeSQL) execsFor(query string) []execCall {
	var out []execCall
	for _, c := range f.execs {
		if c.query == query {
			out = append(out, c)
		}
	}
	return out
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assignAll(dest, r.vals)
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	return assignAll(dest, r.rows[r.idx-1])
}

func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) Close()                                       {}
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func assignAll(dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan arity mismatch: %d dest, %d vals", len(dest), len(vals))
	}
	for i, v := range vals {
		if err := assign(dest[i], v); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

func assign(dest, val any) error {
	switch d := dest.(type) {
	case *string:
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("want string, have %T", val)
		}
		*d = s
	case *int64:
		n, ok := val.(int64)
		if !ok {
			return fmt.Errorf("want int64, have %T", val)
		}
		*d = n
	case *bool:
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("want bool, have %T", val)
		}
		*d = b
	case *time.Time:
		t, ok := val.(time.Time)
		if !ok {
			return fmt.Errorf("want time.Time, have %T", val)
		}
		*d = t
	default:
		return fmt.Errorf("unsupported scan target %T", dest)
	}
	return nil
}

func newTestApp(sql *fakeSQL) *App {
	return &App{
		SQL:        sql,
		Logger:     zerolog.Nop(),
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	}
}

// withChiParam attaches a chi URL parameter so handlers can be called
// directly without a router.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
