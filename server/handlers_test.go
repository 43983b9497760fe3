package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/cashbook"
)

// journal is a Store keeping the encoded journal in memory.
type journal struct {
	data  []byte
	saves int
	fail  bool // fail makes every Save fail
}

func (j *journal) Load() (*cashbook.Book, error) {
	return cashbook.DecodeBook(bytes.NewReader(j.data), cashbook.WithCurrency("EUR"))
}

func (j *journal) Save(b *cashbook.Book) error {
	if j.fail {
		return errors.New("disk full")
	}
	var buf bytes.Buffer
	if err := cashbook.EncodeBook(&buf, b); err != nil {
		return err
	}
	j.data = buf.Bytes()
	j.saves++
	return nil
}

type fixture struct {
	handler *Handler
	store   *journal
	router  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b, err := cashbook.NewBook(cashbook.WithCurrency("EUR"))
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{store: &journal{}}
	f.handler = NewHandler(b, f.store, nil)
	f.router = New(f.handler, nil)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var got map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, got
}

func TestWrites(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantKey    string
		wantValue  any
	}{
		{
			name:       "closing",
			method:     http.MethodPost,
			path:       "/api/closings",
			body:       `{"date":"2024-03-01","sales":1000,"card":400,"counted":590,"personnel":120}`,
			wantStatus: http.StatusCreated,
			wantKey:    "date",
			wantValue:  "2024-03-01",
		},
		{
			name:       "duplicate closing",
			method:     http.MethodPost,
			path:       "/api/closings",
			body:       `{"date":"2024-03-01","sales":10,"card":0,"counted":10,"personnel":0}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "negative amount",
			method:     http.MethodPost,
			path:       "/api/closings",
			body:       `{"date":"2024-03-02","sales":-10,"card":0,"counted":10,"personnel":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing amount",
			method:     http.MethodPost,
			path:       "/api/closings",
			body:       `{"date":"2024-03-02","sales":10,"card":0,"counted":10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad date",
			method:     http.MethodPost,
			path:       "/api/closings",
			body:       `{"date":"02/03/2024","sales":10,"card":0,"counted":10,"personnel":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "purchase",
			method:     http.MethodPost,
			path:       "/api/stock",
			body:       `{"date":"2024-03-05","category":"Drinks","amount":"300"}`,
			wantStatus: http.StatusCreated,
			wantKey:    "possibleDuplicate",
			wantValue:  false,
		},
		{
			name:       "identical purchase",
			method:     http.MethodPost,
			path:       "/api/stock",
			body:       `{"date":"2024-03-05","category":"Drinks","amount":300}`,
			wantStatus: http.StatusCreated,
			wantKey:    "possibleDuplicate",
			wantValue:  true,
		},
		{
			name:       "unknown category",
			method:     http.MethodPost,
			path:       "/api/stock",
			body:       `{"date":"2024-03-05","category":"Tobacco","amount":30}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "fixed cost",
			method:     http.MethodPost,
			path:       "/api/fixed",
			body:       `{"month":"2024-03","concept":"Rent","amount":600}`,
			wantStatus: http.StatusCreated,
			wantKey:    "concept",
			wantValue:  "Rent",
		},
		{
			name:       "duplicate fixed cost",
			method:     http.MethodPost,
			path:       "/api/fixed",
			body:       `{"month":"2024-03","concept":"Rent","amount":700}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "new category",
			method:     http.MethodPost,
			path:       "/api/categories/stock",
			body:       `{"label":"Tobacco"}`,
			wantStatus: http.StatusCreated,
			wantKey:    "created",
			wantValue:  true,
		},
		{
			name:       "known category",
			method:     http.MethodPost,
			path:       "/api/categories/stock",
			body:       `{"label":"Tobacco"}`,
			wantStatus: http.StatusOK,
			wantKey:    "created",
			wantValue:  false,
		},
		{
			name:       "unknown kind",
			method:     http.MethodPost,
			path:       "/api/categories/payroll",
			body:       `{"label":"Bonus"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "import",
			method:     http.MethodPost,
			path:       "/api/stock/import",
			body:       `[{"date":"2024-03-05","category":"Drinks","amount":300},{"date":"2024-03-06","category":"Tobacco","amount":40}]`,
			wantStatus: http.StatusOK,
			wantKey:    "inserted",
			wantValue:  float64(1),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, got := f.do(t, tc.method, tc.path, tc.body)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", status, tc.wantStatus, got)
			}
			if tc.wantKey == "" {
				return
			}
			if got[tc.wantKey] != tc.wantValue {
				t.Errorf("%s = %v, want %v", tc.wantKey, got[tc.wantKey], tc.wantValue)
			}
		})
	}

	// only accepted writes are saved.
	if f.store.saves != 6 {
		t.Errorf("saves = %d, want 6", f.store.saves)
	}
	book := f.handler.current()
	if n := len(book.Closings()); n != 1 {
		t.Errorf("closings = %d, want 1", n)
	}
	if n := len(book.Purchases()); n != 3 {
		t.Errorf("purchases = %d, want 3", n)
	}
}

func TestUnknownCategory(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		path string
		body string
		want string
	}{
		{"/api/stock", `{"date":"2024-03-05","category":"Tobacco","amount":30}`, `unknown stock category "Tobacco", see GET /api/categories/stock`},
		{"/api/fixed", `{"month":"2024-03","concept":"Parking","amount":60}`, `unknown fixed category "Parking", see GET /api/categories/fixed`},
		{"/api/stock/import", `[{"date":"2024-03-05","category":"Food","amount":30},{"date":"2024-03-05","category":"Tobacco","amount":30}]`, `row 2: invalid value: unknown stock category "Tobacco"`},
	}
	for _, tc := range testCases {
		status, got := f.do(t, http.MethodPost, tc.path, tc.body)
		msg, _ := got["error"].(string)
		if status != http.StatusBadRequest || !strings.Contains(msg, tc.want) {
			t.Errorf("POST %s = %d %q, want 400 with %q", tc.path, status, msg, tc.want)
		}
	}
	if f.store.saves != 0 {
		t.Errorf("saves = %d, want 0", f.store.saves)
	}
}

// A write the store fails to save is not kept: the client can retry it.
func TestSaveFailure(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/fixed", `{"month":"2024-03","concept":"Rent","amount":600}`)

	closing := `{"date":"2024-03-01","sales":1000,"card":400,"counted":590,"personnel":120}`
	f.store.fail = true
	if status, got := f.do(t, http.MethodPost, "/api/closings", closing); status != http.StatusInternalServerError {
		t.Fatalf("POST closing with a failing save = %d %v, want 500", status, got)
	}
	if status, _ := f.do(t, http.MethodGet, "/api/closings/2024-03-01", ""); status != http.StatusNotFound {
		t.Errorf("GET unsaved closing = %d, want 404", status)
	}
	if n := len(f.handler.current().FixedCosts()); n != 1 {
		t.Errorf("fixed costs after the failed save = %d, want the saved one", n)
	}

	f.store.fail = false
	if status, got := f.do(t, http.MethodPost, "/api/closings", closing); status != http.StatusCreated {
		t.Fatalf("POST closing retry = %d %v, want 201", status, got)
	}
	if status, _ := f.do(t, http.MethodGet, "/api/closings/2024-03-01", ""); status != http.StatusOK {
		t.Errorf("GET saved closing = %d, want 200", status)
	}
}

func TestReads(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/closings", `{"date":"2024-03-01","sales":1000,"card":400,"counted":570,"personnel":100}`)

	status, got := f.do(t, http.MethodGet, "/api/closings/2024-03-01", "")
	if status != http.StatusOK || got["short"] != true || got["discrepancy"] != float64(-30) {
		t.Errorf("GET closing = %d %v, want a 30 shortfall", status, got)
	}
	if status, _ := f.do(t, http.MethodGet, "/api/closings/2024-03-02", ""); status != http.StatusNotFound {
		t.Errorf("GET missing closing = %d, want 404", status)
	}

	status, got = f.do(t, http.MethodGet, "/api/months/2024-03", "")
	if status != http.StatusOK {
		t.Fatalf("GET month = %d", status)
	}
	alerts, _ := got["alerts"].([]any)
	if len(alerts) == 0 || alerts[0] != "cash-shortfall" {
		t.Errorf("alerts = %v, want cash-shortfall first", got["alerts"])
	}
	if status, _ := f.do(t, http.MethodGet, "/api/months/March", ""); status != http.StatusBadRequest {
		t.Errorf("GET bad month = %d, want 400", status)
	}

	status, got = f.do(t, http.MethodGet, "/api/summary?year=2023", "")
	if months, _ := got["months"].([]any); status != http.StatusOK || len(months) != 0 {
		t.Errorf("GET summary of 2023 = %d %v, want no months", status, got)
	}
	status, got = f.do(t, http.MethodGet, "/api/summary", "")
	if months, _ := got["months"].([]any); status != http.StatusOK || len(months) != 1 {
		t.Errorf("GET summary = %d %v, want one month", status, got)
	}
	if status, _ := f.do(t, http.MethodGet, "/api/summary?year=last", ""); status != http.StatusBadRequest {
		t.Errorf("GET summary of a bad year = %d, want 400", status)
	}

	status, got = f.do(t, http.MethodGet, "/api/categories/fixed", "")
	if labels, _ := got["labels"].([]any); status != http.StatusOK || len(labels) != len(cashbook.DefaultFixedConcepts) {
		t.Errorf("GET categories = %d %v", status, got)
	}
}

func TestMonths(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/months", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("GET months of an empty book = %s, want []", got)
	}

	f.do(t, http.MethodPost, "/api/fixed", `{"month":"2024-01","concept":"Rent","amount":600}`)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/months", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != `["2024-01"]` {
		t.Errorf("GET months = %s", got)
	}
}
