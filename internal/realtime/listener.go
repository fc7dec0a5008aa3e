// Package realtime forwards row changes on the orders table to websocket subscribers.
//
// A trigger on orders calls pg_notify with {"op": "INSERT"|"UPDATE", "id": <order id>}.
// The Listener holds one dedicated connection in LISTEN mode, loads the changed row and
// publishes it to the hub topic the kitchen dashboard subscribes to.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/enum"
	"github.com/mamba-kebabs/ordering/internal/service"
	"github.com/mamba-kebabs/ordering/internal/ws"
	"go.uber.org/zap"
)

// Notification is the trigger payload.
type Notification struct {
	Op string `json:"op"`
	ID int64  `json:"id"`
}

// OrderGetter is satisfied by *database.Queries.
type OrderGetter interface {
	GetOrder(ctx context.Context, id int64) (database.Order, error)
}

// Publisher is satisfied by *ws.Hub.
type Publisher interface {
	Publish(ctx context.Context, topic string, event ws.Event) bool
}

// notificationConn is a connection in LISTEN mode.
type notificationConn interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type Listener struct {
	connect    func(ctx context.Context) (notificationConn, error)
	store      OrderGetter
	pub        Publisher
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

// NewListener listens on enum.OrdersChannel using a connection taken out of pool.
func NewListener(pool *pgxpool.Pool, store OrderGetter, pub Publisher, logger *zap.Logger) *Listener {
	l := &Listener{
		store:      store,
		pub:        pub,
		logger:     logger,
		newBackOff: defaultBackOff,
	}
	l.connect = func(ctx context.Context) (notificationConn, error) {
		return listenConn(ctx, pool, enum.OrdersChannel)
	}
	return l
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0 // retry until ctx is done
	return b
}

// listenConn hijacks a pool connection so LISTEN state never leaks back into the pool.
func listenConn(ctx context.Context, pool *pgxpool.Pool, channel string) (notificationConn, error) {
	pc, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}
	conn := pc.Hijack()
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("listen %s: %w", channel, err)
	}
	return conn, nil
}

// Run listens until ctx is canceled, reconnecting with exponential backoff.
func (l *Listener) Run(ctx context.Context) error {
	b := l.newBackOff()
	op := func() error {
		err := l.session(ctx, b)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		l.logger.Warn("realtime listener disconnected", zap.Error(err), zap.Duration("retry_in", wait))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// session runs one LISTEN connection until it fails.
func (l *Listener) session(ctx context.Context, b backoff.BackOff) error {
	conn, err := l.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	b.Reset()
	l.logger.Info("realtime listener connected", zap.String("channel", enum.OrdersChannel))

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		l.handle(ctx, n.Payload)
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	var n Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		l.logger.Warn("bad orders notification", zap.String("payload", payload), zap.Error(err))
		return
	}

	var eventType string
	switch n.Op {
	case "INSERT":
		eventType = enum.EventOrderInserted
	case "UPDATE":
		eventType = enum.EventOrderUpdated
	default:
		return
	}

	order, err := l.store.GetOrder(ctx, n.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return
		}
		l.logger.Error("load notified order", zap.Int64("order_id", n.ID), zap.Error(err))
		return
	}

	body, err := json.Marshal(service.NewOrderView(order))
	if err != nil {
		l.logger.Error("marshal order event", zap.Int64("order_id", n.ID), zap.Error(err))
		return
	}
	if !l.pub.Publish(ctx, enum.TopicOrders, ws.Event{Type: eventType, Payload: body}) {
		l.logger.Debug("order event dropped", zap.Int64("order_id", n.ID))
	}
}
