package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mamba-kebabs/ordering/internal/config"
	mw "github.com/mamba-kebabs/ordering/internal/middleware"
	"github.com/mamba-kebabs/ordering/internal/router"
	"github.com/mamba-kebabs/ordering/internal/ws"
	"go.uber.org/zap"
)

type staticSecret string

func (s staticSecret) Verify(p string) bool { return p == string(s) }

func newTestRouter(loginLimiter *mw.RateLimiter) http.Handler {
	cfg := &config.Config{
		JWTSecret:       "router-test-secret",
		AdminSessionTTL: time.Hour,
		AllowedOrigins:  []string{"http://localhost:8081"},
	}
	return router.New(cfg, router.Deps{
		AdminSecret:  staticSecret("letmein"),
		Hub:          ws.NewHub(),
		LoginLimiter: loginLimiter,
		Logger:       zap.NewNop(),
	})
}

func TestPublicEndpoints(t *testing.T) {
	r := newTestRouter(nil)

	for _, path := range []string{"/health", "/metrics", "/static/admin.js", "/admin"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s: got %d, want 200", path, rr.Code)
		}
	}
}

func TestAdminOrdersRequireToken(t *testing.T) {
	r := newTestRouter(nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/admin/orders", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/ws/orders", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("websocket status: got %d, want 401", rr.Code)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	r := newTestRouter(mw.NewRateLimiter(1, 2, zap.NewNop()))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("POST", "/api/admin/login", bytes.NewBufferString(`{"password":"nope"}`))
		req.RemoteAddr = "10.0.0.9:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes[i] = rr.Code
	}

	if codes[0] != http.StatusUnauthorized || codes[1] != http.StatusUnauthorized {
		t.Fatalf("first attempts: got %v, want 401s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third attempt: got %d, want 429", codes[2])
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest("OPTIONS", "/api/checkout", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); !strings.EqualFold(got, "http://localhost:8081") {
		t.Fatalf("allow origin: got %q", got)
	}
}
