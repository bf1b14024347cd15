package models

import "time"

// UserRole classifies an account. Roles are inferred at registration by the
// email-domain heuristic (service.ClassifyRole) and may be corrected by an
// admin later.
type UserRole string

const (
	RoleFarmer   UserRole = "farmer"
	RoleStudent  UserRole = "student"
	RoleBusiness UserRole = "business"
	RoleAdmin    UserRole = "admin"
)

// UserStatus is the account state. Accounts are deactivated, never deleted.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the repository layer.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Country       string     `json:"country"`
	PasswordHash  string     `json:"-"`
	Role          UserRole   `json:"role"`
	Status        UserStatus `json:"status"`
	RememberToken string     `json:"-"`
	TokenExpiry   *time.Time `json:"-"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ActivityLog is one audit trail entry. Appends are best-effort and never
// abort the operation being logged.
type ActivityLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}
