// Package types provides type definitions for structured data shared across the compliance agent.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// authValidate is shared by the request Validate methods; the validator
// caches struct metadata, so one instance serves the package.
var authValidate = validator.New()

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the API-facing user record. It mirrors the db layer's user
// without the password hash, and keeps types free of a db import.
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse carries the user profile and session token returned by
// both register and login.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest is the password change payload.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Validate checks the struct tags.
func (r *CreateUserRequest) Validate() error { return authValidate.Struct(r) }

// Validate checks the struct tags.
func (r *LoginRequest) Validate() error { return authValidate.Struct(r) }

// Validate checks the struct tags.
func (r *UpdatePasswordRequest) Validate() error { return authValidate.Struct(r) }
