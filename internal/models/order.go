package models

import (
	"fmt"
	"time"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the payment state of an order. The platform records the
// payment method only; settlement happens outside this service.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order is the persisted header of one checkout. Customer fields are a
// snapshot taken at order time, not a live reference to the user record.
// Monetary fields are immutable once the transaction commits; only the
// status columns change afterwards.
type Order struct {
	ID             int64         `json:"id"`
	Number         string        `json:"number"`
	UserID         *int64        `json:"user_id,omitempty"`
	CustomerName   string        `json:"customer_name"`
	CustomerEmail  string        `json:"customer_email"`
	CustomerPhone  string        `json:"customer_phone"`
	ShippingAddr   string        `json:"shipping_address"`
	BillingAddr    string        `json:"billing_address"`
	City           string        `json:"city"`
	Region         string        `json:"region"`
	Country        string        `json:"country"`
	PostalCode     string        `json:"postal_code"`
	Subtotal       float64       `json:"subtotal"`
	TaxAmount      float64       `json:"tax_amount"`
	ShippingAmount float64       `json:"shipping_amount"`
	DiscountAmount float64       `json:"discount_amount"`
	FinalAmount    float64       `json:"final_amount"`
	PaymentMethod  string        `json:"payment_method"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Status         OrderStatus   `json:"order_status"`
	Notes          string        `json:"notes,omitempty"`
	Items          []OrderItem   `json:"items,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// OrderItem is one product line owned by exactly one order. Rolling back
// the order removes its items with it.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductType string  `json:"product_type"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// orderNumberPadding is the minimum digit count in an order number.
// Larger ids are never truncated.
const orderNumberPadding = 4

// FormatOrderNumber renders the public order number for a header id and
// year: AG-2025-0007. External systems (tracking, support) parse this
// format, so it must not change shape.
func FormatOrderNumber(id int64, year int) string {
	return fmt.Sprintf("AG-%d-%0*d", year, orderNumberPadding, id)
}

// CanTransition reports whether an order may move from its current status
// to the target status.
func (o *Order) CanTransition(to OrderStatus) bool {
	return ValidStatusTransition(o.Status, to)
}

// ValidStatusTransition implements the order state machine:
// pending → processing → shipped → delivered, or pending → cancelled.
// Cancellation is only possible while the order is still pending.
func ValidStatusTransition(from, to OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}

	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
