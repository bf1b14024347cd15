package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  John Mwangi  ", "John Mwangi"},
		{"escapes angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"escapes quotes", `say "hi" 'there'`, "say &quot;hi&quot; &#39;there&#39;"},
		{"escapes ampersand", "Seeds & Tools", "Seeds &amp; Tools"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeInput(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+255712345678", true},
		{"0712345678", true},
		{"+254712345678", false},
		{"712345678", false},
		{"+2557123456789", false},
		{"071234567", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidPhone(tt.phone); got != tt.valid {
			t.Errorf("ValidPhone(%q) = %v, expected %v", tt.phone, got, tt.valid)
		}
	}
}

func TestSanitizeOrderRequestDefaults(t *testing.T) {
	req := &models.PlaceOrderRequest{
		Name:  "  Amina  ",
		Email: "amina@example.com",
	}

	SanitizeOrderRequest(req)

	if req.Name != "Amina" {
		t.Errorf("Expected trimmed name, got %q", req.Name)
	}
	if req.Country != "Tanzania" {
		t.Errorf("Expected default country Tanzania, got %q", req.Country)
	}
	if req.Payment != "mpesa" {
		t.Errorf("Expected default payment mpesa, got %q", req.Payment)
	}
}

func TestSanitizeOrderRequestKeepsExplicitValues(t *testing.T) {
	req := &models.PlaceOrderRequest{
		Country: "Kenya",
		Payment: "card",
	}

	SanitizeOrderRequest(req)

	if req.Country != "Kenya" {
		t.Errorf("Expected country Kenya, got %q", req.Country)
	}
	if req.Payment != "card" {
		t.Errorf("Expected payment card, got %q", req.Payment)
	}
}

func TestValidateOrderRequestAccumulatesAllErrors(t *testing.T) {
	req := &models.PlaceOrderRequest{}

	err := ValidateOrderRequest(req, nil)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var errs *apperrors.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}

	// Every failing field reported, not just the first.
	expected := []string{
		"Name is required",
		"Email is required",
		"Phone number is required",
		"Shipping address is required",
		"City is required",
		"Region is required",
		"Cart is empty",
	}

	if len(errs.Errors) != len(expected) {
		t.Fatalf("Expected %d errors, got %d: %v", len(expected), len(errs.Errors), err)
	}

	msg := err.Error()
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected message to contain %q, got %q", want, msg)
		}
	}

	if !strings.Contains(msg, ", ") {
		t.Errorf("Expected comma-joined message, got %q", msg)
	}
}

func TestValidateOrderRequestValid(t *testing.T) {
	req := &models.PlaceOrderRequest{
		Name:    "Amina Hassan",
		Email:   "amina@example.com",
		Phone:   "0712345678",
		Address: "12 Uhuru Street",
		City:    "Morogoro",
		Region:  "Morogoro",
	}
	cart := []models.CartLine{{ID: 1, Name: "Maize Seeds", Price: 5000, Quantity: 1}}

	if err := ValidateOrderRequest(req, cart); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr []string
	}{
		{
			name: "valid",
			req: models.RegisterRequest{
				Name:            "Amina Hassan",
				Email:           "amina@example.com",
				Phone:           "+255712345678",
				Country:         "Tanzania",
				Password:        "secret123",
				ConfirmPassword: "secret123",
				Terms:           true,
			},
		},
		{
			name: "password mismatch",
			req: models.RegisterRequest{
				Name:            "Amina Hassan",
				Email:           "amina@example.com",
				Phone:           "+255712345678",
				Country:         "Tanzania",
				Password:        "secret123",
				ConfirmPassword: "secret124",
				Terms:           true,
			},
			wantErr: []string{"Passwords do not match"},
		},
		{
			name: "short password",
			req: models.RegisterRequest{
				Name:            "Amina Hassan",
				Email:           "amina@example.com",
				Phone:           "+255712345678",
				Country:         "Tanzania",
				Password:        "abc",
				ConfirmPassword: "abc",
				Terms:           true,
			},
			wantErr: []string{"Password must be at least 6 characters"},
		},
		{
			name: "terms not accepted",
			req: models.RegisterRequest{
				Name:            "Amina Hassan",
				Email:           "amina@example.com",
				Phone:           "+255712345678",
				Country:         "Tanzania",
				Password:        "secret123",
				ConfirmPassword: "secret123",
			},
			wantErr: []string{"You must agree to the terms and conditions"},
		},
		{
			name: "bad phone and email",
			req: models.RegisterRequest{
				Name:            "Amina Hassan",
				Email:           "not-an-email",
				Phone:           "12345",
				Country:         "Tanzania",
				Password:        "secret123",
				ConfirmPassword: "secret123",
				Terms:           true,
			},
			wantErr: []string{"Invalid email address", "Invalid phone number format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegisterRequest(&tt.req)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Expected message to contain %q, got %q", want, err.Error())
				}
			}
		})
	}
}

func TestValidateContactRequest(t *testing.T) {
	req := &models.ContactRequest{
		Name:    "Amina",
		Email:   "amina@example.com",
		Subject: "Maize prices",
		Message: "short",
	}

	err := ValidateContactRequest(req)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "Message is too short") {
		t.Errorf("Expected short-message error, got %q", err.Error())
	}

	req.Message = "This message is long enough to pass."
	if err := ValidateContactRequest(req); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
