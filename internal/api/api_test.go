package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/rolodex/internal/logic"
	"github.com/starford/rolodex/internal/testutil"
)

// testEnv sets up a seeded contacts dir, SQLite DB, manager and router.
// An empty token means auth is disabled.
func testEnv(t *testing.T, token string) http.Handler {
	t.Helper()
	return testEnvWithSSE(t, token, nil)
}

func testEnvWithSSE(t *testing.T, token string, sseHandler http.Handler) http.Handler {
	t.Helper()
	_, store := testutil.TestStore(t)
	db := testutil.TestDB(t)
	testutil.SeedContacts(t, store, testutil.TypicalPersons())

	mgr := logic.NewManager(store, db, logic.WithLogger(testutil.DiscardLogger()))
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewRouter(mgr, token != "", token, sseHandler)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func personNames(ps []Person) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestListPersons(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/persons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decode[PersonListResponse](t, w)
	if resp.Total != 5 {
		t.Errorf("total = %d, want 5", resp.Total)
	}
	want := []string{"Alice Pauline", "Benson Meier", "Carl Kurz", "Daniel Meier", "Elle Meyer"}
	if diff := cmp.Diff(want, personNames(resp.Persons)); diff != "" {
		t.Errorf("persons mismatch (-want +got):\n%s", diff)
	}
}

func TestListPersons_FilteredView(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/commands", CommandRequest{Command: "find Meier"})
	if w.Code != http.StatusOK {
		t.Fatalf("find status = %d", w.Code)
	}

	w = do(t, router, http.MethodGet, "/persons?view=filtered", nil)
	resp := decode[PersonListResponse](t, w)
	if diff := cmp.Diff([]string{"Benson Meier", "Daniel Meier"}, personNames(resp.Persons)); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}

	w = do(t, router, http.MethodGet, "/persons?view=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad view = %d, want 400", w.Code)
	}
}

func TestGetPerson(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/persons/"+testutil.Carl.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if p := decode[Person](t, w); p.Name != "Carl Kurz" {
		t.Errorf("name = %q", p.Name)
	}

	w = do(t, router, http.MethodGet, "/persons/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing person = %d, want 404", w.Code)
	}
	if e := decode[errResponse](t, w); e.Kind != "not_found" {
		t.Errorf("kind = %q", e.Kind)
	}
}

func TestRunCommand_Add(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/commands",
		CommandRequest{Command: "add n:Amy Bee p:11111111 e:amy@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decode[CommandResponse](t, w)
	if !strings.HasPrefix(resp.Feedback, "New person added: Amy Bee") {
		t.Errorf("feedback = %q", resp.Feedback)
	}
	if len(resp.Persons) != 6 {
		t.Errorf("persons = %d, want 6", len(resp.Persons))
	}
}

func TestRunCommand_Failures(t *testing.T) {
	router := testEnv(t, "")

	tests := []struct {
		command string
		kind    string
		msg     string
	}{
		{"bogus", "unknown_command", "Unknown command"},
		{"delete 9", "invalid_index", "The person index provided is invalid (valid range: 1-5)"},
		{"remark 2 r:hi", "not_implemented", "Index: 2, Remark: hi"},
	}
	for _, tt := range tests {
		w := do(t, router, http.MethodPost, "/commands", CommandRequest{Command: tt.command})
		if w.Code != http.StatusBadRequest {
			t.Errorf("%q status = %d, want 400", tt.command, w.Code)
			continue
		}
		e := decode[errResponse](t, w)
		if e.Kind != tt.kind || e.Error != tt.msg {
			t.Errorf("%q error = %+v, want kind %q msg %q", tt.command, e, tt.kind, tt.msg)
		}
	}
}

func TestRunCommand_BadRequests(t *testing.T) {
	router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodPost, "/commands", CommandRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty command = %d, want 400", w.Code)
	}
}

func TestRunCommand_HelpAndExit(t *testing.T) {
	router := testEnv(t, "")

	resp := decode[CommandResponse](t, do(t, router, http.MethodPost, "/commands", CommandRequest{Command: "help"}))
	if !resp.ShowHelp {
		t.Error("help did not set show_help")
	}
	resp = decode[CommandResponse](t, do(t, router, http.MethodPost, "/commands", CommandRequest{Command: "exit"}))
	if !resp.Exit {
		t.Error("exit did not set exit")
	}
}

func TestHelpEndpoint(t *testing.T) {
	router := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/commands/help", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decode[HelpResponse](t, w); !strings.Contains(resp.Help, "remark") {
		t.Errorf("help = %q", resp.Help)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := do(t, router, http.MethodGet, "/search?q=Kurz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[SearchResponse](t, w)
	if len(resp.Results) != 1 || resp.Results[0].ID != testutil.Carl.ID {
		t.Errorf("results = %+v", resp.Results)
	}

	w = do(t, router, http.MethodGet, "/search?q=nobodyatall", nil)
	if !strings.Contains(w.Body.String(), `"results":[]`) {
		t.Errorf("empty search body = %s", w.Body.String())
	}
}

func TestSearchMissingQuery(t *testing.T) {
	router := testEnv(t, "")
	if w := do(t, router, http.MethodGet, "/search", nil); w.Code != http.StatusBadRequest {
		t.Errorf("search no query = %d, want 400", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := testEnv(t, "secret123")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer secret123", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "Bearer wrong", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret123", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/persons", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	router := testEnv(t, "")
	if w := do(t, router, http.MethodGet, "/persons", nil); w.Code != http.StatusOK {
		t.Errorf("no auth = %d, want 200", w.Code)
	}
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSSEEvents_AuthProtected(t *testing.T) {
	router := testEnvWithSSE(t, "secret", okHandler)
	if w := do(t, router, http.MethodGet, "/events", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}
}

func TestSSEEvents_ValidToken(t *testing.T) {
	router := testEnvWithSSE(t, "tok", okHandler)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("SSE with valid token = %d, want 200", w.Code)
	}
}

func TestSSEEvents_NotMountedWithoutHandler(t *testing.T) {
	router := testEnv(t, "")
	if w := do(t, router, http.MethodGet, "/events", nil); w.Code != http.StatusNotFound {
		t.Errorf("SSE without handler = %d, want 404", w.Code)
	}
}
