package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mamba-kebabs/ordering/internal/cart"
	"github.com/mamba-kebabs/ordering/internal/service"
	"go.uber.org/zap"
)

const maxCheckoutBody = 64 << 10

// Checkouter is satisfied by *service.CheckoutService; narrow interface for testability.
type Checkouter interface {
	Checkout(ctx context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error)
}

// CheckoutHandler turns the browser cart into a hosted payment session.
type CheckoutHandler struct {
	svc           Checkouter
	publicBaseURL string
	logger        *zap.Logger
}

func NewCheckoutHandler(svc Checkouter, publicBaseURL string, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, publicBaseURL: strings.TrimRight(publicBaseURL, "/"), logger: logger}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.Checkout)
}

type checkoutRequest struct {
	Cart []checkoutLineRequest `json:"cart"`
}

// Price and name are accepted for compatibility with older clients but ignored.
type checkoutLineRequest struct {
	UniqueID    string   `json:"unique_id"`
	MenuID      int64    `json:"menu_id"`
	Name        string   `json:"name"`
	Price       any      `json:"price"`
	Ingredients []string `json:"ingredients"`
	Note        string   `json:"note"`
	ItemOwner   string   `json:"item_owner"`
}

type checkoutResponse struct {
	URL     string `json:"url"`
	OrderID int64  `json:"order_id"`
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Cart) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
		return
	}

	lines := make([]service.CheckoutLine, len(req.Cart))
	for i, l := range req.Cart {
		lines[i] = service.CheckoutLine{
			MenuID:      l.MenuID,
			Ingredients: l.Ingredients,
			Note:        l.Note,
			ItemOwner:   l.ItemOwner,
		}
	}

	result, err := h.svc.Checkout(r.Context(), service.CheckoutRequest{
		Origin: h.origin(r),
		Lines:  lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrPaymentUnavailable):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "payment provider unavailable"})
		default:
			writeInternalError(w, h.logger, "checkout", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{URL: result.URL, OrderID: result.OrderID})
}

// origin is where the provider redirects the customer back to.
func (h *CheckoutHandler) origin(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	if o := r.Header.Get("Origin"); o != "" && o != "null" {
		return strings.TrimRight(o, "/")
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrMenuItemNotFound) ||
		errors.Is(err, service.ErrInvalidMenuID) ||
		errors.Is(err, cart.ErrUnknownIngredient) ||
		errors.Is(err, cart.ErrDuplicateIngredient) ||
		errors.Is(err, cart.ErrUnknownOptionsType) ||
		errors.Is(err, cart.ErrNoteTooLong) ||
		errors.Is(err, cart.ErrOwnerTooLong) ||
		errors.Is(err, cart.ErrNegativePrice)
}
