package domain

import (
	"fmt"
	"time"
)

// User dashboard account. Role is fixed for the lifetime of a session.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
}

// NewUser validates the role and builds a User
func NewUser(id, name, email string, role Role, active bool) (User, error) {
	if !role.Valid() {
		return User{}, fmt.Errorf("%w: %d", ErrInvalidRole, uint8(role))
	}
	if id == "" {
		return User{}, fmt.Errorf("user id is required")
	}
	return User{ID: id, Name: name, Email: email, Role: role, IsActive: active}, nil
}
