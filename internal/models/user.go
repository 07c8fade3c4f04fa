package models

import "time"

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"created_at"`
}

// AuthRequest represents a login or registration request
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload of a successful login or registration
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
