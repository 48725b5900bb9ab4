package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account (pure domain model)
// @Description User account information
type User struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username  string    `json:"username" example:"alice"`
	Password  string    `json:"-"` // bcrypt hash, never the plaintext
	CreatedAt time.Time `json:"createdAt" example:"2023-01-01T12:00:00Z"`
}

// CredentialsRequest carries a username and a plaintext password
// @Description Request body for sign-up and login
type CredentialsRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// UserResponse represents a user without sensitive information
// @Description User information returned in API responses (no sensitive data)
type UserResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username  string    `json:"username" example:"alice"`
	CreatedAt time.Time `json:"createdAt" example:"2023-01-01T12:00:00Z"`
}

// ToResponse converts a User to UserResponse (removes sensitive data)
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// NewUser creates a new user with generated ID
func NewUser(username, hashedPassword string) *User {
	return &User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
}

// UserRepository defines the interface for credential data operations.
// Records are written once and never mutated.
type UserRepository interface {
	// Create a new user; ErrUsernameTaken on a duplicate username
	Create(user *User) error

	// Get user by username; ErrUserNotFound when absent
	GetByUsername(username string) (*User, error)

	// Check if username exists
	UsernameExists(username string) (bool, error)
}
