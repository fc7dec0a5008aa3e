package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mamba-kebabs/ordering/internal/auth"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newWSServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(ServeWS(hub, testSecret, "orders", "KITCHEN", zap.NewNop()))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestServeWS_RejectsMissingToken(t *testing.T) {
	_, url := newWSServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", resp)
	}
}

func TestServeWS_RejectsWrongRole(t *testing.T) {
	_, url := newWSServer(t)
	token, _ := auth.GenerateToken(testSecret, "someone", "CUSTOMER", time.Hour)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp)
	}
}

func TestServeWS_ReceivesPublishedEvents(t *testing.T) {
	hub, url := newWSServer(t)
	token, _ := auth.GenerateToken(testSecret, "kitchen", "KITCHEN", time.Hour)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.Subscribers("orders") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(context.Background(), "orders", Event{Type: "order.inserted", Payload: json.RawMessage(`{"id":7}`)})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "order.inserted" || string(got.Payload) != `{"id":7}` {
		t.Errorf("unexpected event: %+v", got)
	}
}
