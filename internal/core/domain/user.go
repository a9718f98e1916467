package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWeakPassword = errors.New("password does not meet security requirements")
var ErrTokenInvalid = errors.New("invalid token")

// User models an authenticated actor. The password hash is opaque to
// everything above the repository and the hasher, and is excluded from
// every serialized view.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known role labels.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
