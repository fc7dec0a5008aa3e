package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/idempotency"
	"github.com/mamba-kebabs/ordering/internal/metrics"
	"github.com/mamba-kebabs/ordering/internal/payment"
	"go.uber.org/zap"
)

// PaymentStore defines the DB methods touched by payment webhooks.
// Satisfied by *database.Queries; narrow interface for testability.
type PaymentStore interface {
	MarkOrderPaid(ctx context.Context, arg database.MarkOrderPaidParams) (database.Order, error)
	CancelUnpaidOrder(ctx context.Context, id int64) (database.Order, error)
}

// Webhook outcomes, also used as metric labels.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeFailed    = "failed"
)

// releaseTimeout bounds the claim release after a failed event. The request
// context may already be canceled at that point.
const releaseTimeout = 5 * time.Second

// PaymentService applies verified payment events to orders.
type PaymentService struct {
	store  PaymentStore
	seen   idempotency.Store
	logger *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store PaymentStore, seen idempotency.Store, logger *zap.Logger) *PaymentService {
	return &PaymentService{store: store, seen: seen, logger: logger}
}

// HandleEvent processes a webhook event at most once per event id. On a database error
// the claim is released so the provider's retry is processed again.
func (s *PaymentService) HandleEvent(ctx context.Context, evt *payment.Event) (string, error) {
	outcome, err := s.handle(ctx, evt)
	metrics.WebhookEvent(evt.Type, outcome)
	return outcome, err
}

func (s *PaymentService) handle(ctx context.Context, evt *payment.Event) (string, error) {
	if evt.Type != payment.EventCheckoutCompleted && evt.Type != payment.EventCheckoutExpired {
		return OutcomeIgnored, nil
	}
	if evt.OrderID == 0 {
		s.logger.Warn("checkout event without order id", zap.String("event_id", evt.ID), zap.String("session_id", evt.SessionID))
		return OutcomeIgnored, nil
	}

	claimed, err := s.seen.Claim(ctx, evt.ID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("claim event: %w", err)
	}
	if !claimed {
		s.logger.Info("duplicate webhook event", zap.String("event_id", evt.ID))
		return OutcomeDuplicate, nil
	}

	switch evt.Type {
	case payment.EventCheckoutCompleted:
		err = s.markPaid(ctx, evt)
	case payment.EventCheckoutExpired:
		err = s.cancelExpired(ctx, evt)
	}
	if err != nil {
		s.release(ctx, evt.ID)
		return OutcomeFailed, err
	}
	return OutcomeProcessed, nil
}

func (s *PaymentService) release(ctx context.Context, eventID string) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.seen.Release(rctx, eventID); err != nil {
		s.logger.Error("release webhook event", zap.String("event_id", eventID), zap.Error(err))
	}
}

func (s *PaymentService) markPaid(ctx context.Context, evt *payment.Event) error {
	params := database.MarkOrderPaidParams{ID: evt.OrderID}
	if c := evt.Customer; c != nil {
		details, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal customer details: %w", err)
		}
		params.CustomerDetails = details
		params.CustomerName = pgtype.Text{String: c.Name, Valid: c.Name != ""}
	}

	order, err := s.store.MarkOrderPaid(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("paid order not found", zap.Int64("order_id", evt.OrderID), zap.String("event_id", evt.ID))
			return nil
		}
		return fmt.Errorf("mark order %d paid: %w", evt.OrderID, err)
	}
	if order.OrderStatus == database.OrderStatusCanceled {
		// Payment landed after the order was swept; needs a refund or manual reopen.
		metrics.PaidAfterCancel()
		s.logger.Error("payment received for canceled order",
			zap.Int64("order_id", evt.OrderID),
			zap.String("session_id", evt.SessionID),
			zap.String("event_id", evt.ID),
		)
		return nil
	}
	s.logger.Info("order paid", zap.Int64("order_id", evt.OrderID), zap.String("session_id", evt.SessionID))
	return nil
}

func (s *PaymentService) cancelExpired(ctx context.Context, evt *payment.Event) error {
	if _, err := s.store.CancelUnpaidOrder(ctx, evt.OrderID); err != nil {
		// Paid, already moved by the kitchen, or unknown.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("cancel expired order %d: %w", evt.OrderID, err)
	}
	s.logger.Info("order canceled after session expiry", zap.Int64("order_id", evt.OrderID))
	return nil
}
