package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ValidRole reports whether role is one a profile may carry.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// User is the profile record kept next to the credential.
type User struct {
	ID           string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the verified caller attached to a request.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}
