package enum

// ── Order workflow (enum order_status in DB) ──

const (
	OrderStatusNew          = "new"
	OrderStatusAcknowledged = "acknowledged"
	OrderStatusCooking      = "cooking"
	OrderStatusReady        = "ready"
	OrderStatusCompleted    = "completed"
	OrderStatusCanceled     = "canceled"
)

// ── Payment (enum payment_status in DB) ──

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// ── Menu customisation (enum menu_options_type in DB) ──

const (
	OptionsTypeKebab = "kebab"
	OptionsTypeText  = "text"
)

// ── Realtime ──

const (
	// OrdersChannel is the LISTEN/NOTIFY channel fed by the orders trigger.
	OrdersChannel = "orders_changes"

	// TopicOrders is the websocket topic the kitchen dashboard subscribes to.
	TopicOrders = "orders"

	EventOrderInserted = "order.inserted"
	EventOrderUpdated  = "order.updated"
)

// ── Roles ──

const (
	RoleKitchen = "KITCHEN"
)
