package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mamba-kebabs/ordering/internal/payment"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// WebhookParser is satisfied by *payment.Stripe.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*payment.Event, error)
}

// EventHandler is satisfied by *service.PaymentService.
type EventHandler interface {
	HandleEvent(ctx context.Context, evt *payment.Event) (string, error)
}

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	parser WebhookParser
	events EventHandler
	logger *zap.Logger
}

func NewWebhookHandler(parser WebhookParser, events EventHandler, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{parser: parser, events: events, logger: logger}
}

// RegisterRoutes registers the webhook endpoint on the given Chi router.
func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.Receive)
}

// Receive handles POST /api/webhook. The raw body is needed for signature verification.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Webhook Error: " + err.Error()})
		return
	}

	evt, err := h.parser.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrMissingSignature) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing Stripe Signature or Webhook Secret"})
			return
		}
		h.logger.Warn("webhook verification failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Webhook Error: " + err.Error()})
		return
	}

	outcome, err := h.events.HandleEvent(r.Context(), evt)
	if err != nil {
		writeInternalError(w, h.logger, "handle webhook event", err,
			zap.String("event_id", evt.ID), zap.String("type", evt.Type))
		return
	}

	h.logger.Debug("webhook event", zap.String("event_id", evt.ID), zap.String("type", evt.Type), zap.String("outcome", outcome))
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
