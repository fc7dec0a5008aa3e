package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/money"
	"go.uber.org/zap"
)

// MenuStore defines the database methods needed by the menu handler.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]database.MenuItem, error)
}

// MenuHandler serves the public menu.
type MenuHandler struct {
	store  MenuStore
	logger *zap.Logger
}

func NewMenuHandler(store MenuStore, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{store: store, logger: logger}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.List)
}

type menuItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	OptionsType string    `json:"options_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMenuItemResponse(m database.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Price:       money.Format(m.Price),
		Category:    m.Category,
		OptionsType: string(m.OptionsType),
		CreatedAt:   m.CreatedAt,
	}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMenuItems(r.Context())
	if err != nil {
		writeInternalError(w, h.logger, "list menu items", err)
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}
