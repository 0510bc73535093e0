package models

import (
	"net/mail"
	"strings"
	"time"

	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
)

// User owns an append-only sequence of consent events. Email is unique across
// the store; the uniqueness violation surfaces as a conflict, never as an
// overwrite.
type User struct {
	ID        id.UserID
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateRequest carries the input for user creation.
type CreateRequest struct {
	Email string `json:"email"`
}

// Normalize trims and lowercases the email so uniqueness is case-insensitive.
func (r *CreateRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks that the request is well-formed.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "request is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "invalid email address")
	}
	return nil
}
