package models

// PlaceOrderRequest is the typed checkout payload. Every field passes
// through the sanitizer before use; the cart may be submitted inline or
// left empty to use the session cart.
type PlaceOrderRequest struct {
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Phone   string     `json:"phone"`
	Address string     `json:"address"`
	City    string     `json:"city"`
	Region  string     `json:"region"`
	Country string     `json:"country"`
	Postal  string     `json:"postal"`
	Payment string     `json:"payment"`
	Notes   string     `json:"notes"`
	Cart    []CartLine `json:"cart"`
}

// PlaceOrderResult is returned to the client after a committed checkout.
type PlaceOrderResult struct {
	ID     int64   `json:"id"`
	Number string  `json:"number"`
	Total  float64 `json:"total"`
	Items  int     `json:"items"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Terms           bool   `json:"terms"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// SessionUser is the identity stored in the cookie session and returned by
// the auth endpoints.
type SessionUser struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"type"`
}
