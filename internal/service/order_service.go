package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/metrics"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// OrderService orchestrates checkout: validation, pricing, the persistence
// transaction, and the post-commit side effects (events, mail, audit log).
type OrderService struct {
	orders   OrderRepository
	mailer   Mailer
	events   EventPublisher
	activity ActivityRecorder
	config   *config.Config
	logger   *logging.Logger
}

// NewOrderService creates an order service.
func NewOrderService(
	orders OrderRepository,
	mailer Mailer,
	events EventPublisher,
	activity ActivityRecorder,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		orders:   orders,
		mailer:   mailer,
		events:   events,
		activity: activity,
		config:   cfg,
		logger:   logging.NewLogger("order-service"),
	}
}

// Identity is the optional authenticated caller placing the order.
type Identity struct {
	UserID int64
	IP     string
}

// PlaceOrder runs the checkout workflow. Totals are always recomputed
// server-side from the submitted cart; client-supplied amounts are never
// trusted. On success the order exists with status pending and its
// confirmation side effects have been kicked off.
func (s *OrderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest, ident *Identity) (*models.PlaceOrderResult, error) {
	SanitizeOrderRequest(req)

	if err := ValidateOrderRequest(req, req.Cart); err != nil {
		return nil, err
	}

	totals, err := CalculateOrderTotals(req.Cart, s.config.Pricing.TaxRate, s.config.Pricing.ShippingFee)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:   req.Name,
		CustomerEmail:  req.Email,
		CustomerPhone:  req.Phone,
		ShippingAddr:   req.Address,
		// Billing address mirrors shipping until the storefront collects
		// them separately.
		BillingAddr:    req.Address,
		City:           req.City,
		Region:         req.Region,
		Country:        req.Country,
		PostalCode:     req.Postal,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.Tax,
		ShippingAmount: totals.Shipping,
		DiscountAmount: totals.Discount,
		FinalAmount:    totals.Total,
		PaymentMethod:  req.Payment,
		Notes:          req.Notes,
		Items:          make([]models.OrderItem, 0, len(req.Cart)),
	}

	if ident != nil {
		order.UserID = &ident.UserID
	}

	for _, line := range req.Cart {
		order.Items = append(order.Items, models.OrderItem{
			ProductType: line.Name,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			UnitPrice:   line.Price,
			TotalPrice:  LineTotal(line.Price, line.Quantity),
		})
	}

	order, err = s.orders.PlaceOrder(ctx, order)
	if err != nil {
		s.logger.Error("Checkout failed", logging.Fields{
			"customer": req.Email,
			"error":    err.Error(),
		})
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderValue.Observe(order.FinalAmount)

	if s.config.Features.EnableOrderEvents {
		if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
			// Event delivery never fails a committed order.
			s.logger.Error("Failed to publish order event", logging.Fields{
				"order_number": order.Number,
				"error":        err.Error(),
			})
		}
	}

	if ident != nil {
		s.activity.Record(ctx, ident.UserID, "order_placed",
			fmt.Sprintf("Placed order #%s", order.Number), ident.IP)
	}

	go s.sendOrderConfirmation(context.Background(), order)

	return &models.PlaceOrderResult{
		ID:     order.ID,
		Number: order.Number,
		Total:  order.FinalAmount,
		Items:  len(order.Items),
	}, nil
}

// GetOrder retrieves an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// TrackOrder retrieves an order by its public number.
func (s *OrderService) TrackOrder(ctx context.Context, number string) (*models.Order, error) {
	return s.orders.GetByNumber(ctx, number)
}

// GetUserOrders retrieves an authenticated user's recent orders.
func (s *OrderService) GetUserOrders(ctx context.Context, userID int64, limit int) ([]*models.Order, error) {
	return s.orders.GetByUserID(ctx, userID, limit)
}

// TransitionOrder applies a fulfillment status change after checking the
// order state machine.
func (s *OrderService) TransitionOrder(ctx context.Context, id int64, to models.OrderStatus) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !order.CanTransition(to) {
		return apperrors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s", order.Status, to))
	}

	return s.orders.UpdateStatus(ctx, id, to)
}

// TransitionOrderByNumber applies a fulfillment status change keyed by the
// public order number, as warehouse events carry the number rather than
// the database id.
func (s *OrderService) TransitionOrderByNumber(ctx context.Context, number string, to models.OrderStatus) error {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}

	if !order.CanTransition(to) {
		return apperrors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s", order.Status, to))
	}

	return s.orders.UpdateStatus(ctx, order.ID, to)
}

func (s *OrderService) sendOrderConfirmation(ctx context.Context, order *models.Order) {
	currency := s.config.Site.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", order.CustomerName)
	b.WriteString("Thank you for your order! We have received your order and will process it shortly.\n\n")
	b.WriteString("Order Details:\n")
	fmt.Fprintf(&b, "Order Number: %s\n", order.Number)
	fmt.Fprintf(&b, "Order Date: %s\n", order.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Payment Method: %s\n", strings.ToUpper(order.PaymentMethod))
	fmt.Fprintf(&b, "Shipping Address: %s, %s, %s, %s\n\n", order.ShippingAddr, order.City, order.Region, order.Country)

	b.WriteString("Order Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s: %g %s @ %s %.2f = %s %.2f\n",
			item.ProductName, item.Quantity, item.Unit,
			currency, item.UnitPrice, currency, item.TotalPrice)
	}

	b.WriteString("\nOrder Summary:\n")
	fmt.Fprintf(&b, "Subtotal: %s %.2f\n", currency, order.Subtotal)
	fmt.Fprintf(&b, "Tax (%.0f%%): %s %.2f\n", s.config.Pricing.TaxRate*100, currency, order.TaxAmount)
	fmt.Fprintf(&b, "Shipping: %s %.2f\n", currency, order.ShippingAmount)
	fmt.Fprintf(&b, "Discount: %s %.2f\n", currency, order.DiscountAmount)
	fmt.Fprintf(&b, "Total: %s %.2f\n\n", currency, order.FinalAmount)
	fmt.Fprintf(&b, "You can track your order using order number: %s\n\n", order.Number)
	fmt.Fprintf(&b, "Best regards,\n%s Team", s.config.Site.Name)

	subject := "Order Confirmation - " + order.Number
	if err := s.mailer.Send(ctx, order.CustomerEmail, subject, b.String()); err != nil {
		s.logger.Error("Failed to send order confirmation", logging.Fields{
			"order_number": order.Number,
			"error":        err.Error(),
		})
	}

	adminSubject := "New Order Received - " + order.Number
	adminBody := fmt.Sprintf(
		"A new order has been placed:\n\nOrder Number: %s\nCustomer: %s\nEmail: %s\nPhone: %s\nTotal Amount: %s %.2f\nPayment Method: %s\n\nPlease process this order in the admin panel.",
		order.Number, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		currency, order.FinalAmount, strings.ToUpper(order.PaymentMethod))

	if err := s.mailer.Send(ctx, s.config.Site.AdminEmail, adminSubject, adminBody); err != nil {
		s.logger.Error("Failed to send admin order alert", logging.Fields{
			"order_number": order.Number,
			"error":        err.Error(),
		})
	}
}
