package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geocoder89/meetuphub/internal/auth"
	"github.com/geocoder89/meetuphub/internal/cache"
	"github.com/geocoder89/meetuphub/internal/config"
	apphttp "github.com/geocoder89/meetuphub/internal/http"
	"github.com/geocoder89/meetuphub/internal/observability"
	"github.com/geocoder89/meetuphub/internal/repo/cached"
	"github.com/geocoder89/meetuphub/internal/repo/memory"
	"github.com/geocoder89/meetuphub/internal/service"
)

type apiErrorResponse struct {
	Error struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		RequestID string          `json:"requestId"`
		Details   json.RawMessage `json:"details"`
	} `json:"error"`
}

func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		MaxBodyBytes: 1 << 20,
	}
}

func setupTestRouter(t *testing.T, cfg config.Config, verifier *auth.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Basic logger that discards outputs during tests
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	prom := observability.NewProm(prometheus.NewRegistry())
	store := memory.NewStore()
	meetups := cached.NewMeetupsRepo(store.Meetups(), cache.NewMemory(time.Minute), prom, logger)

	deps := apphttp.Deps{
		Registrations: service.NewRegistrationService(store.Registrations()),
		Meetups:       service.NewMeetupService(meetups, store.Registrations()),
		Prom:          prom,
	}
	if verifier != nil {
		deps.Auth = verifier
	}

	return apphttp.NewRouter(logger, cfg, deps)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrationFlow(t *testing.T) {
	r := setupTestRouter(t, testConfig(), nil)
	today := time.Now().UTC().Format("2006-01-02")

	body := `{"name":"Vanessa Yoshida","registrationCode":"001","dateOfRegistration":"` + today + `"}`
	w := do(t, r, http.MethodPost, "/api/registration", body)
	if w.Code != http.StatusAccepted {
		t.Fatalf("create: got status %d, body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}

	var created struct {
		ID                 int    `json:"id"`
		DateOfRegistration string `json:"dateOfRegistration"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if created.ID == 0 || created.DateOfRegistration != today {
		t.Fatalf("unexpected created registration: %s", w.Body.String())
	}

	// same code again
	w = do(t, r, http.MethodPost, "/api/registration", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: got status %d, body=%s", w.Code, w.Body.String())
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("failed to unmarshal error: %v", err)
	}
	if apiErr.Error.Code != "duplicate_registration" || apiErr.Error.RequestID == "" {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}

	id := strconv.Itoa(created.ID)

	w = do(t, r, http.MethodGet, "/api/registration/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: got status %d", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/registration/"+id, `{"name":"Vanessa Y.","dateOfRegistration":"2026-01-02"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"Vanessa Y."`) {
		t.Fatalf("update: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/registration?registrationCode=001", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"totalElements":1`) {
		t.Fatalf("find: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/api/registration/"+id, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got status %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/registration/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d", w.Code)
	}

	w = do(t, r, http.MethodDelete, "/api/registration/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: got status %d", w.Code)
	}
}

func TestMeetupFlow(t *testing.T) {
	r := setupTestRouter(t, testConfig(), nil)

	w := do(t, r, http.MethodPost, "/api/meetups", `{"event":"Go Night","date":"2026-10-20","ownerId":7}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body=%s", w.Code, w.Body.String())
	}

	var id int
	if err := json.Unmarshal(w.Body.Bytes(), &id); err != nil {
		t.Fatalf("expected bare integer id, got %s", w.Body.String())
	}
	mid := strconv.Itoa(id)

	reg := `{"name":"Vanessa Yoshida","registrationCode":"002","dateOfRegistration":"2026-10-01","meetupId":` + mid + `}`
	w = do(t, r, http.MethodPost, "/api/registration", reg)
	if w.Code != http.StatusAccepted {
		t.Fatalf("register: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/registration", `{"name":"Sam Doe","registrationCode":"003","dateOfRegistration":"2026-10-01","meetupId":999}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("register to unknown meetup: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/meetups/"+mid+"/registrations", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"registrationCode":"002"`) {
		t.Fatalf("meetup registrations: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/meetups/"+mid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: got status %d", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/meetups/"+mid, `{"event":"Go Night II","date":"2026-10-21","ownerId":7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: got status %d, body=%s", w.Code, w.Body.String())
	}

	// served through the cache, must reflect the update
	w = do(t, r, http.MethodGet, "/api/meetups/"+mid, "")
	if !strings.Contains(w.Body.String(), `"Go Night II"`) {
		t.Fatalf("stale meetup after update: %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/meetups?page=0&size=10", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"totalElements":1`) {
		t.Fatalf("list: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/api/meetups/"+mid, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got status %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/meetups/"+mid, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d", w.Code)
	}

	// the registration survives with its meetup reference cleared
	w = do(t, r, http.MethodGet, "/api/registration?registrationCode=002", "")
	if !strings.Contains(w.Body.String(), `"totalElements":1`) || strings.Contains(w.Body.String(), `"meetupId"`) {
		t.Fatalf("registration after meetup delete: %s", w.Body.String())
	}
}

func TestRouter_RejectsNonJSONWrites(t *testing.T) {
	r := setupTestRouter(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/meetups", bytes.NewBufferString("event=Go"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnsupportedMediaType)
	}
}

func TestRouter_OversizeBody(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 32
	r := setupTestRouter(t, cfg, nil)

	w := do(t, r, http.MethodPost, "/api/meetups", `{"event":"`+strings.Repeat("x", 64)+`","date":"2026-10-20","ownerId":7}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	r := setupTestRouter(t, cfg, nil)

	for i := 0; i < 2; i++ {
		if w := do(t, r, http.MethodGet, "/api/meetups", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d", i, w.Code)
		}
	}

	w := do(t, r, http.MethodGet, "/api/meetups", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRouter_AuthGuardsWrites(t *testing.T) {
	mgr := auth.NewManager("test-secret-key", time.Hour)
	r := setupTestRouter(t, testConfig(), mgr)

	body := `{"event":"Go Night","date":"2026-10-20","ownerId":7}`

	if w := do(t, r, http.MethodPost, "/api/meetups", body); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous write: got status %d", w.Code)
	}

	// reads stay open
	if w := do(t, r, http.MethodGet, "/api/meetups", ""); w.Code != http.StatusOK {
		t.Fatalf("anonymous read: got status %d", w.Code)
	}

	tok, err := mgr.GenerateAccessToken("7", "owner@example.com")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/meetups", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("authorized write: got status %d, body=%s", w.Code, w.Body.String())
	}
}

func TestRouter_HugePageIsRejected(t *testing.T) {
	r := setupTestRouter(t, testConfig(), nil)

	if w := do(t, r, http.MethodPost, "/api/meetups", `{"event":"Go Night","date":"2026-10-20","ownerId":7}`); w.Code != http.StatusCreated {
		t.Fatalf("seed meetup: got status %d", w.Code)
	}

	paths := []string{
		"/api/meetups?page=92233720368547759&size=100",
		"/api/meetups?page=9223372036854775807&size=1",
		"/api/registration?page=92233720368547759&size=100",
		"/api/meetups/1/registrations?page=92233720368547759&size=100",
	}

	for _, path := range paths {
		w := do(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: got status %d, want 400, body=%s", path, w.Code, w.Body.String())
		}

		var apiErr apiErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if apiErr.Error.Code != "invalid_request" {
			t.Fatalf("%s: got code %q", path, apiErr.Error.Code)
		}
	}

	// a page past the end is still a valid, empty, last page
	w := do(t, r, http.MethodGet, "/api/meetups?page=1000&size=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("page past the end: got status %d", w.Code)
	}
	var got struct {
		Last  bool `json:"last"`
		Empty bool `json:"empty"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if !got.Last || !got.Empty {
		t.Fatalf("got last=%v empty=%v, want both true", got.Last, got.Empty)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	r := setupTestRouter(t, testConfig(), nil)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/docs", "/docs/openapi.yaml"} {
		if w := do(t, r, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Fatalf("%s: got status %d", path, w.Code)
		}
	}

	if w := do(t, r, http.MethodGet, "/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown route: got status %d", w.Code)
	}
}
