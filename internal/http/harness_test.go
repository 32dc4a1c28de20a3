package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/config"
	"eduadmin/internal/http/handlers"
	applog "eduadmin/internal/log"
	"eduadmin/internal/repos"
	"eduadmin/internal/session"
)

const testSecret = "test-cookie-secret"

type apiResp struct {
	status int
	body   string
}

type apiCall struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// fakeAPI stands in for the EduMarket REST API. Routes are keyed by
// "METHOD /path"; unknown routes answer 404.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]apiResp
	calls  []apiCall
}

func newFakeAPI() *fakeAPI { return &fakeAPI{routes: map[string]apiResp{}} }

func (f *fakeAPI) on(route string, status int, body string) *fakeAPI {
	f.mu.Lock()
	f.routes[route] = apiResp{status: status, body: body}
	f.mu.Unlock()
	return f
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: body})
	resp, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not found"}`))
		return
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeAPI) callsTo(method, path string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

type testEnv struct {
	app   *fiber.App
	api   *fakeAPI
	audit *repos.AuditRepo
}

// newEnv wires the real routes against a fake API. extra middleware runs
// before the dashboard routes (csrf, limiters).
func newEnv(t *testing.T, api *fakeAPI, loginGuard fiber.Handler, extra ...fiber.Handler) *testEnv {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	audit := repos.NewAuditRepo(db)

	deps := handlers.NewDeps(apiclient.New(srv.URL), audit, config.Config{CookieSecret: testSecret})
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	for _, h := range extra {
		app.Use(h)
	}
	handlers.Mount(app, deps, loginGuard)
	return &testEnv{app: app, api: api, audit: audit}
}

// adminToken is a JWT shaped like the API's; its signature is irrelevant
// to the dashboard.
func adminToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin-1",
		"email": email,
		"role":  "admin",
		"exp":   exp.Unix(),
	}).SignedString([]byte("api-side-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func sessionCookie(t *testing.T, token string) *http.Cookie {
	t.Helper()
	v, err := session.NewSealer(testSecret).Seal(token)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	return &http.Cookie{Name: session.CookieName, Value: v}
}

func (e *testEnv) do(t *testing.T, method, target string, form string, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != "" {
		body = strings.NewReader(form)
	}
	req := httptest.NewRequest(method, target, body)
	if form != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// observeLogs routes the app logger into an in-memory observer for the
// duration of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := applog.L()
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(prev) })
	return logs
}

func fieldsOf(e observer.LoggedEntry) map[string]any {
	m := e.ContextMap()
	f, _ := m["fields"].(map[string]any)
	return f
}
