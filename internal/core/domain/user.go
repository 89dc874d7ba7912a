package domain

import "time"

// User models a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// Registration is a validated sign-up request.
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Credentials is a validated login request.
type Credentials struct {
	Email    string
	Password string
}

// PasswordReset is a validated password reset request.
type PasswordReset struct {
	Email       string
	NewPassword string
}
