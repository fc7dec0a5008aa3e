package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mamba-kebabs/ordering/internal/cart"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/metrics"
	"github.com/mamba-kebabs/ordering/internal/money"
	"github.com/mamba-kebabs/ordering/internal/payment"
	"go.uber.org/zap"
)

// successPath is completed by the provider with the real session id on redirect.
const successPath = "/success?session_id={CHECKOUT_SESSION_ID}"

// Errors returned by the checkout service.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidMenuID      = errors.New("invalid menu_id")
	ErrPaymentUnavailable = errors.New("payment provider unavailable")
)

// CheckoutStore defines the DB methods needed to turn a cart into an order.
// Satisfied by *database.Queries; narrow interface for testability.
type CheckoutStore interface {
	ListMenuItemsByIDs(ctx context.Context, ids []int64) ([]database.MenuItem, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	SetOrderSessionID(ctx context.Context, arg database.SetOrderSessionIDParams) (database.Order, error)
	CancelUnpaidOrder(ctx context.Context, id int64) (database.Order, error)
}

// CheckoutRequest is the decoded cart submitted by the browser.
type CheckoutRequest struct {
	Origin string
	Lines  []CheckoutLine
}

// CheckoutLine is a single cart line. Prices are never taken from the client.
type CheckoutLine struct {
	MenuID      int64
	Ingredients []string
	Note        string
	ItemOwner   string
}

type CheckoutResult struct {
	OrderID   int64
	SessionID string
	URL       string
}

// OrderItem is the snapshot of a cart line stored in orders.items.
type OrderItem struct {
	UniqueID  string `json:"unique_id"`
	MenuID    int64  `json:"menu_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Details   string `json:"details"`
	ItemOwner string `json:"item_owner,omitempty"`
}

// CheckoutService creates orders and their hosted payment sessions.
type CheckoutService struct {
	store      CheckoutStore
	gateway    payment.Gateway
	currency   string
	sessionTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(store CheckoutStore, gateway payment.Gateway, currency string, sessionTTL time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:      store,
		gateway:    gateway,
		currency:   currency,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Checkout prices the cart from the menu, stores an unpaid order and opens a checkout
// session for it. If the session cannot be created the order is canceled.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	c, err := s.buildCart(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	lines := c.Lines()
	items := make([]OrderItem, len(lines))
	for i, l := range lines {
		items[i] = OrderItem{
			UniqueID:  l.UniqueID,
			MenuID:    l.MenuID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Details:   l.Details,
			ItemOwner: l.ItemOwner,
		}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	order, err := s.store.CreateOrder(ctx, database.CreateOrderParams{
		TotalPrice: money.ToNumeric(c.Total()),
		Items:      itemsJSON,
	})
	if err != nil {
		metrics.CheckoutFailed("database")
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.OrderCreated()

	params := payment.CheckoutParams{
		OrderID:    order.ID,
		Currency:   s.currency,
		SuccessURL: req.Origin + successPath,
		CancelURL:  req.Origin + "/",
		ExpiresAt:  s.now().Add(s.sessionTTL),
	}
	for _, l := range lines {
		name := l.Name
		if l.ItemOwner != "" {
			name = fmt.Sprintf("%s (%s)", l.Name, l.ItemOwner)
		}
		params.Lines = append(params.Lines, payment.LineItem{
			Name:        name,
			Description: l.Details,
			UnitAmount:  money.Cents(l.Price),
			Quantity:    1,
		})
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		metrics.CheckoutFailed("provider")
		s.logger.Error("create checkout session", zap.Int64("order_id", order.ID), zap.Error(err))
		if _, cerr := s.store.CancelUnpaidOrder(ctx, order.ID); cerr != nil {
			s.logger.Error("cancel order after session failure", zap.Int64("order_id", order.ID), zap.Error(cerr))
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	if _, err := s.store.SetOrderSessionID(ctx, database.SetOrderSessionIDParams{
		ID:              order.ID,
		StripeSessionID: pgtype.Text{String: sess.ID, Valid: true},
	}); err != nil {
		metrics.CheckoutFailed("database")
		return nil, fmt.Errorf("store session id: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.Int64("order_id", order.ID),
		zap.String("session_id", sess.ID),
		zap.String("total", c.Total().StringFixed(2)),
		zap.Int("lines", len(lines)),
	)
	return &CheckoutResult{OrderID: order.ID, SessionID: sess.ID, URL: sess.URL}, nil
}

func (s *CheckoutService) buildCart(ctx context.Context, reqLines []CheckoutLine) (*cart.Cart, error) {
	ids := make([]int64, 0, len(reqLines))
	seen := make(map[int64]bool, len(reqLines))
	for i, l := range reqLines {
		if l.MenuID <= 0 {
			return nil, fmt.Errorf("cart[%d]: %w", i, ErrInvalidMenuID)
		}
		if !seen[l.MenuID] {
			seen[l.MenuID] = true
			ids = append(ids, l.MenuID)
		}
	}

	rows, err := s.store.ListMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	menu := make(map[int64]database.MenuItem, len(rows))
	for _, m := range rows {
		menu[m.ID] = m
	}

	c := cart.New()
	for i, l := range reqLines {
		m, ok := menu[l.MenuID]
		if !ok {
			return nil, fmt.Errorf("cart[%d]: %w", i, ErrMenuItemNotFound)
		}
		item := cart.Item{
			MenuID:      m.ID,
			Name:        m.Name,
			Price:       money.ToDecimal(m.Price),
			OptionsType: string(m.OptionsType),
		}
		sel := cart.Selection{Ingredients: l.Ingredients, Note: strings.TrimSpace(l.Note)}
		if _, err := c.Add(item, sel, l.ItemOwner); err != nil {
			return nil, fmt.Errorf("cart[%d]: %w", i, err)
		}
	}
	return c, nil
}
