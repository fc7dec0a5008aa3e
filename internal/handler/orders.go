package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/metrics"
	"github.com/mamba-kebabs/ordering/internal/service"
	"go.uber.org/zap"
)

// OrderStore defines the database methods needed by order read/update handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id int64) (database.Order, error)
	GetOrderBySessionID(ctx context.Context, stripeSessionID pgtype.Text) (database.Order, error)
	ListActiveOrders(ctx context.Context) ([]database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// OrderHandler handles kitchen order endpoints.
type OrderHandler struct {
	store  OrderStore
	logger *zap.Logger
}

func NewOrderHandler(store OrderStore, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{store: store, logger: logger}
}

// RegisterRoutes registers admin order endpoints.
// Expected to be mounted behind Authenticate + RequireRole: /api/admin/orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// RegisterPublicRoutes registers the customer-facing lookup used by the success page.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/orders/session/{sid}", h.GetBySession)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type sessionOrderResponse struct {
	ID            int64  `json:"id"`
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
}

// List handles GET /api/admin/orders. Newest first, terminal orders excluded.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListActiveOrders(r.Context())
	if err != nil {
		writeInternalError(w, h.logger, "list active orders", err)
		return
	}

	resp := make([]service.OrderView, len(orders))
	for i, o := range orders {
		resp[i] = service.NewOrderView(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeInternalError(w, h.logger, "get order", err, zap.Int64("order_id", orderID))
		return
	}

	writeJSON(w, http.StatusOK, service.NewOrderView(order))
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	newStatus := database.OrderStatus(req.Status)
	if !isValidOrderStatus(newStatus) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	// Fetch current order to validate transition
	current, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeInternalError(w, h.logger, "get order for status update", err, zap.Int64("order_id", orderID))
		return
	}

	if err := validateStatusTransition(current.OrderStatus, newStatus); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:            orderID,
		OrderStatus:   newStatus,
		OrderStatus_2: current.OrderStatus,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The status changed between our read and write
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed, please retry"})
			return
		}
		writeInternalError(w, h.logger, "update order status", err, zap.Int64("order_id", orderID))
		return
	}

	metrics.StatusTransition(string(newStatus))
	h.logger.Info("order status changed",
		zap.Int64("order_id", orderID),
		zap.String("from", string(current.OrderStatus)),
		zap.String("to", string(newStatus)),
	)
	writeJSON(w, http.StatusOK, service.NewOrderView(updated))
}

// GetBySession handles GET /api/orders/session/{sid}.
func (h *OrderHandler) GetBySession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if sid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session id is required"})
		return
	}

	order, err := h.store.GetOrderBySessionID(r.Context(), pgtype.Text{String: sid, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeInternalError(w, h.logger, "get order by session", err)
		return
	}

	writeJSON(w, http.StatusOK, sessionOrderResponse{
		ID:            order.ID,
		OrderStatus:   string(order.OrderStatus),
		PaymentStatus: string(order.PaymentStatus),
	})
}

// --- Helpers ---

func parseOrderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return 0, false
	}
	return id, true
}

// isValidOrderStatus checks if the given status is a valid order status.
func isValidOrderStatus(s database.OrderStatus) bool {
	switch s {
	case database.OrderStatusNew,
		database.OrderStatusAcknowledged,
		database.OrderStatusCooking,
		database.OrderStatusReady,
		database.OrderStatusCompleted,
		database.OrderStatusCanceled:
		return true
	}
	return false
}

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can transition to.
// Completed and canceled are terminal and have no entry.
var allowedTransitions = map[database.OrderStatus][]database.OrderStatus{
	database.OrderStatusNew:          {database.OrderStatusAcknowledged, database.OrderStatusCompleted, database.OrderStatusCanceled},
	database.OrderStatusAcknowledged: {database.OrderStatusCooking, database.OrderStatusCompleted, database.OrderStatusCanceled},
	database.OrderStatusCooking:      {database.OrderStatusReady, database.OrderStatusCompleted, database.OrderStatusCanceled},
	database.OrderStatusReady:        {database.OrderStatusCompleted, database.OrderStatusCanceled},
}

// validateStatusTransition checks if the transition from current to next is allowed.
func validateStatusTransition(current, next database.OrderStatus) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("cannot transition from %s", current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %s to %s", current, next)
}
