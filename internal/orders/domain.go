package orders

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Header is the order record itself. It is created only after a successful
// payment callback and is never mutated by the storefront afterwards.
type Header struct {
	ID              uuid.UUID     `json:"id"`
	UserID          string        `json:"user_id"`
	TotalAmount     int64         `json:"total_amount"` // paise
	ShippingAddress string        `json:"shipping_address"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentRef      string        `json:"payment_ref"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Line belongs to exactly one Header. PriceAtTime is a frozen copy of the cart
// line's unit price: a historical fact, decoupled from later catalog changes.
type Line struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	DesignID    string    `json:"design_id"`
	Page        int       `json:"page"`
	Quantity    int       `json:"quantity"`
	PriceAtTime int64     `json:"price_at_time"` // paise
}
