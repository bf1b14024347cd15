package service

import (
	"math"
	"testing"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

const (
	testTaxRate     = 0.18
	testShippingFee = 15000.0
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateOrderTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []models.CartLine
		subtotal float64
		tax      float64
		total    float64
	}{
		{
			name: "single line",
			lines: []models.CartLine{
				{ID: 1, Name: "Maize Seeds", Price: 5000, Quantity: 2},
			},
			subtotal: 10000,
			tax:      1800,
			total:    26800,
		},
		{
			name: "multiple lines",
			lines: []models.CartLine{
				{ID: 1, Name: "Maize Seeds", Price: 5000, Quantity: 2},
				{ID: 2, Name: "NPK Fertilizer", Price: 75000, Quantity: 1},
				{ID: 3, Name: "Hand Hoe", Price: 12500, Quantity: 3},
			},
			subtotal: 122500,
			tax:      22050,
			total:    159550,
		},
		{
			name: "fractional quantity",
			lines: []models.CartLine{
				{ID: 1, Name: "Pesticide", Price: 333.33, Quantity: 1.5},
			},
			subtotal: 500,
			tax:      90,
			total:    15590,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := CalculateOrderTotals(tt.lines, testTaxRate, testShippingFee)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !almostEqual(totals.Subtotal, tt.subtotal) {
				t.Errorf("Expected subtotal %.2f, got %.2f", tt.subtotal, totals.Subtotal)
			}
			if !almostEqual(totals.Tax, tt.tax) {
				t.Errorf("Expected tax %.2f, got %.2f", tt.tax, totals.Tax)
			}
			if !almostEqual(totals.Shipping, testShippingFee) {
				t.Errorf("Expected shipping %.2f, got %.2f", testShippingFee, totals.Shipping)
			}
			if !almostEqual(totals.Discount, 0) {
				t.Errorf("Expected zero discount, got %.2f", totals.Discount)
			}
			if !almostEqual(totals.Total, tt.total) {
				t.Errorf("Expected total %.2f, got %.2f", tt.total, totals.Total)
			}
		})
	}
}

func TestCalculateOrderTotalsSubtotalMatchesLineSum(t *testing.T) {
	lines := []models.CartLine{
		{ID: 1, Name: "Coffee Seedlings", Price: 1234.567, Quantity: 3},
		{ID: 2, Name: "Drip Kit", Price: 99999.99, Quantity: 2},
		{ID: 3, Name: "Soil Test", Price: 0.01, Quantity: 7},
	}

	totals, err := CalculateOrderTotals(lines, testTaxRate, testShippingFee)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var lineSum float64
	for _, line := range lines {
		lineSum += LineTotal(line.Price, line.Quantity)
	}

	if !almostEqual(totals.Subtotal, lineSum) {
		t.Errorf("Subtotal %.2f does not match sum of line totals %.2f", totals.Subtotal, lineSum)
	}

	if !almostEqual(totals.Total, totals.Subtotal+totals.Tax+totals.Shipping-totals.Discount) {
		t.Errorf("Total %.2f does not match breakdown", totals.Total)
	}
}

func TestCalculateOrderTotalsRejectsBadCarts(t *testing.T) {
	tests := []struct {
		name  string
		lines []models.CartLine
	}{
		{"empty cart", nil},
		{"zero quantity", []models.CartLine{{ID: 1, Name: "Seeds", Price: 100, Quantity: 0}}},
		{"negative quantity", []models.CartLine{{ID: 1, Name: "Seeds", Price: 100, Quantity: -2}}},
		{"zero price", []models.CartLine{{ID: 1, Name: "Seeds", Price: 0, Quantity: 1}}},
		{"negative price", []models.CartLine{{ID: 1, Name: "Seeds", Price: -5, Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateOrderTotals(tt.lines, testTaxRate, testShippingFee)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !apperrors.IsValidation(err) {
				t.Errorf("Expected validation error, got %T", err)
			}
		})
	}
}

func TestLineTotalRounds(t *testing.T) {
	if got := LineTotal(19.999, 1); !almostEqual(got, 20.0) {
		t.Errorf("Expected 20.00, got %v", got)
	}
	if got := LineTotal(3.333, 3); !almostEqual(got, 10.0) {
		t.Errorf("Expected 10.00, got %v", got)
	}
}
