package service

import (
	"encoding/json"
	"time"

	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/money"
)

// OrderView is the JSON shape of an order on the admin API and the realtime channel.
type OrderView struct {
	ID              int64           `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	TotalPrice      string          `json:"total_price"`
	OrderStatus     string          `json:"order_status"`
	PaymentStatus   string          `json:"payment_status"`
	Items           []OrderItem     `json:"items"`
	StripeSessionID *string         `json:"stripe_session_id"`
	CustomerName    *string         `json:"customer_name"`
	CustomerDetails json.RawMessage `json:"customer_details"`
}

func NewOrderView(o database.Order) OrderView {
	v := OrderView{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		TotalPrice:    money.Format(o.TotalPrice),
		OrderStatus:   string(o.OrderStatus),
		PaymentStatus: string(o.PaymentStatus),
		Items:         []OrderItem{},
	}
	if len(o.Items) > 0 {
		// Rows are written by Checkout; a bad snapshot renders as no items.
		_ = json.Unmarshal(o.Items, &v.Items)
	}
	if o.StripeSessionID.Valid {
		v.StripeSessionID = &o.StripeSessionID.String
	}
	if o.CustomerName.Valid {
		v.CustomerName = &o.CustomerName.String
	}
	if len(o.CustomerDetails) > 0 {
		v.CustomerDetails = json.RawMessage(o.CustomerDetails)
	} else {
		v.CustomerDetails = json.RawMessage("null")
	}
	return v
}
