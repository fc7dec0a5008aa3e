package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mamba-kebabs/ordering/internal/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(zap.New(core)))
	r.Use(middleware.Metrics)
	r.Get("/api/admin/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/admin/orders/7", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zap.WarnLevel {
		t.Errorf("level: got %v, want warn", e.Level)
	}
	fields := e.ContextMap()
	if fields["route"] != "/api/admin/orders/{id}" {
		t.Errorf("route: got %v", fields["route"])
	}
	if fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("status: got %v", fields["status"])
	}
}
