package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"shopfront/internal/config"
	"shopfront/internal/http/handlers"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
)

// fakeCatalog stands in for the remote catalog API and counts calls per path.
type fakeCatalog struct {
	mu    sync.Mutex
	calls map[string]int
	last  []byte

	listStatus   int
	listBody     string
	createStatus int
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	body, _ := io.ReadAll(r.Body)
	if r.URL.Path == "/products/add" {
		f.last = body
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/products":
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
			return
		}
		_, _ = io.WriteString(w, f.listBody)
	case "/products/add":
		if f.createStatus != 0 {
			w.WriteHeader(f.createStatus)
			return
		}
		var m map[string]any
		_ = json.Unmarshal(body, &m)
		m["id"] = 195
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(m)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeCatalog) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeCatalog) lastCreate() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

const twoProducts = `{"products":[
 {"id":1,"title":"Essence Mascara","description":"Lash princess","price":9.99,"rating":4.5,"thumbnail":"https://cdn.test/1.png","reviews":[{"rating":5},{"rating":4}]},
 {"id":2,"title":"Eyeshadow Palette","description":"Mirror","price":19.99,"rating":3,"thumbnail":"https://cdn.test/2.png","reviews":[]}
],"total":2,"skip":0,"limit":20}`

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
	api *fakeCatalog
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	fake := &fakeCatalog{calls: map[string]int{}, listBody: twoProducts}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	db, err := repos.OpenDB(repos.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{APIBaseURL: srv.URL, APITimeout: 2 * time.Second, PageSize: 20, ListStale: time.Minute}

	app := fiber.New(fiber.Config{Views: handlers.NewEngine("../../web/templates"), BodyLimit: 1 << 20})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax", ContextKey: "csrf"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	handlers.Routes(app, handlers.NewDeps(db, cfg))
	app.Use(handlers.NotFound)

	return &testApp{app: app, db: db, api: fake}
}

func (ta *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := ta.app.Test(req, 5000)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

// csrfToken fetches the form page once so the middleware issues a token cookie.
func (ta *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	resp, _ := ta.do(t, httptest.NewRequest("GET", "/products/new", nil))
	tok := extractCookie(resp, "csrf_")
	require.NotEmpty(t, tok, "csrf token missing")
	return tok
}

func postForm(path, csrfTok string, form url.Values, cookies ...*http.Cookie) *http.Request {
	form.Set("csrf", csrfTok)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

type logEntry struct {
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf lockedBuf
	old := applog.Writer()
	applog.SetOutput(&buf)
	defer applog.SetOutput(old)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
