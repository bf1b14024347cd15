package service

import (
	"math"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// OrderTotals is the pricing breakdown for a checkout.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// roundCurrency rounds to the currency minor unit. Line totals and derived
// amounts all use this rule so item sums match the header subtotal exactly.
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineTotal computes a single line's total using the pricing rounding rule.
func LineTotal(unitPrice, quantity float64) float64 {
	return roundCurrency(unitPrice * quantity)
}

// CalculateOrderTotals derives the full breakdown from a cart. Pure function
// of its input: subtotal is the sum of rounded line totals, tax applies the
// configured VAT rate, shipping is the flat fee, and discount is zero unless
// a discount policy supplies one.
//
// Returns a validation error for an empty cart or any line with a
// non-positive price or quantity.
func CalculateOrderTotals(lines []models.CartLine, taxRate, shippingFee float64) (OrderTotals, error) {
	if len(lines) == 0 {
		return OrderTotals{}, apperrors.NewValidationError("cart", "Cart is empty")
	}

	var subtotal float64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return OrderTotals{}, apperrors.NewValidationError("cart", "Item quantity must be positive")
		}
		if line.Price <= 0 {
			return OrderTotals{}, apperrors.NewValidationError("cart", "Item price must be positive")
		}
		subtotal += LineTotal(line.Price, line.Quantity)
	}
	subtotal = roundCurrency(subtotal)

	tax := roundCurrency(subtotal * taxRate)
	shipping := roundCurrency(shippingFee)
	discount := 0.0

	return OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    roundCurrency(subtotal + tax + shipping - discount),
	}, nil
}
