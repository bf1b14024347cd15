package service

import (
	"regexp"
	"strings"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// Tanzanian numbers: international +255XXXXXXXXX or local 0XXXXXXXXX.
	phoneIntlPattern  = regexp.MustCompile(`^\+255[0-9]{9}$`)
	phoneLocalPattern = regexp.MustCompile(`^0[0-9]{9}$`)
)

const minMessageLength = 10

// SanitizeInput trims whitespace and neutralizes markup-significant
// characters so stored values are safe to render.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

// ValidEmail reports whether s is a syntactically plausible email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s matches either Tanzanian phone format.
func ValidPhone(s string) bool {
	return phoneIntlPattern.MatchString(s) || phoneLocalPattern.MatchString(s)
}

// SanitizeOrderRequest cleans every customer-supplied field in place and
// applies the request defaults.
func SanitizeOrderRequest(req *models.PlaceOrderRequest) {
	req.Name = SanitizeInput(req.Name)
	req.Email = SanitizeInput(req.Email)
	req.Phone = SanitizeInput(req.Phone)
	req.Address = SanitizeInput(req.Address)
	req.City = SanitizeInput(req.City)
	req.Region = SanitizeInput(req.Region)
	req.Country = SanitizeInput(req.Country)
	req.Postal = SanitizeInput(req.Postal)
	req.Payment = SanitizeInput(req.Payment)
	req.Notes = SanitizeInput(req.Notes)

	if req.Country == "" {
		req.Country = "Tanzania"
	}
	if req.Payment == "" {
		req.Payment = "mpesa"
	}
}

// ValidateOrderRequest checks a sanitized checkout request. Errors are
// accumulated so the caller reports the full set, never just the first.
func ValidateOrderRequest(req *models.PlaceOrderRequest, cart []models.CartLine) error {
	errs := &apperrors.ValidationErrors{}

	if req.Name == "" {
		errs.Add("name", "Name is required")
	}
	if req.Email == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(req.Email) {
		errs.Add("email", "Invalid email address")
	}
	if req.Phone == "" {
		errs.Add("phone", "Phone number is required")
	}
	if req.Address == "" {
		errs.Add("address", "Shipping address is required")
	}
	if req.City == "" {
		errs.Add("city", "City is required")
	}
	if req.Region == "" {
		errs.Add("region", "Region is required")
	}
	if len(cart) == 0 {
		errs.Add("cart", "Cart is empty")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateRegisterRequest checks a sanitized registration request.
func ValidateRegisterRequest(req *models.RegisterRequest) error {
	errs := &apperrors.ValidationErrors{}

	if req.Name == "" {
		errs.Add("name", "Name is required")
	}
	if req.Email == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(req.Email) {
		errs.Add("email", "Invalid email address")
	}
	if req.Phone == "" {
		errs.Add("phone", "Phone number is required")
	} else if !ValidPhone(req.Phone) {
		errs.Add("phone", "Invalid phone number format")
	}
	if req.Country == "" {
		errs.Add("country", "Country is required")
	}
	if req.Password == "" {
		errs.Add("password", "Password is required")
	} else if len(req.Password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		errs.Add("confirm_password", "Passwords do not match")
	}
	if !req.Terms {
		errs.Add("terms", "You must agree to the terms and conditions")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateContactRequest checks a sanitized contact form request.
func ValidateContactRequest(req *models.ContactRequest) error {
	errs := &apperrors.ValidationErrors{}

	if req.Name == "" {
		errs.Add("name", "Name is required")
	}
	if req.Email == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(req.Email) {
		errs.Add("email", "Invalid email address")
	}
	if req.Subject == "" {
		errs.Add("subject", "Subject is required")
	}
	if req.Message == "" {
		errs.Add("message", "Message is required")
	} else if len(req.Message) < minMessageLength {
		errs.Add("message", "Message is too short")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
