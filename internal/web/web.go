// Package web serves the customer menu, the payment success page and the kitchen dashboard.
// Templates and assets are compiled into the binary.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mamba-kebabs/ordering/internal/cart"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/money"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"json": func(v interface{}) template.JS {
		b, err := json.Marshal(v)
		if err != nil {
			return template.JS("null")
		}
		return template.JS(b)
	},
}).ParseFS(templateFS, "templates/*.html"))

// MenuStore is satisfied by *database.Queries.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]database.MenuItem, error)
}

// SessionOrders is satisfied by *database.Queries.
type SessionOrders interface {
	GetOrderBySessionID(ctx context.Context, stripeSessionID pgtype.Text) (database.Order, error)
}

// Handler renders the HTML pages.
type Handler struct {
	menu   MenuStore
	orders SessionOrders
	title  string
	logger *zap.Logger
}

func NewHandler(menu MenuStore, orders SessionOrders, logger *zap.Logger) *Handler {
	return &Handler{menu: menu, orders: orders, title: "MAMBA KEBABS", logger: logger}
}

// RegisterRoutes registers page and asset routes on the given Chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Menu)
	r.Get("/success", h.Success)
	r.Get("/admin", h.Admin)

	assets, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))
}

type menuEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	OptionsType string `json:"options_type"`
}

type menuPage struct {
	Title       string
	Items       []menuEntry
	Ingredients []string
}

// Menu handles GET /. Items are listed in id order.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListMenuItems(r.Context())
	if err != nil {
		h.logger.Error("list menu items", zap.Error(err))
		http.Error(w, "menu unavailable", http.StatusInternalServerError)
		return
	}

	page := menuPage{Title: h.title, Items: make([]menuEntry, len(items)), Ingredients: cart.KebabIngredients}
	for i, m := range items {
		page.Items[i] = menuEntry{
			ID:          m.ID,
			Name:        m.Name,
			Price:       money.Format(m.Price),
			Category:    m.Category,
			OptionsType: string(m.OptionsType),
		}
	}
	h.render(w, "menu.html", page)
}

type successPage struct {
	Title   string
	OrderID int64
}

// Success handles GET /success?session_id=... . An unknown session still renders the page.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	page := successPage{Title: h.title}
	if sid := r.URL.Query().Get("session_id"); sid != "" {
		order, err := h.orders.GetOrderBySessionID(r.Context(), pgtype.Text{String: sid, Valid: true})
		switch {
		case err == nil:
			page.OrderID = order.ID
		case !errors.Is(err, pgx.ErrNoRows):
			h.logger.Warn("lookup order for success page", zap.String("session_id", sid), zap.Error(err))
		}
	}
	h.render(w, "success.html", page)
}

// Admin handles GET /admin. Authentication happens in the browser against the API.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin.html", struct{ Title string }{h.title})
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", zap.String("template", name), zap.Error(err))
	}
}
