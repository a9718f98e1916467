package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// customerRequest is the write shape shared by create and update.
// DateOfBirth is an RFC 3339 date (e.g. "1990-04-21").
type customerRequest struct {
	FirstName   string `json:"first_name"    validate:"required,max=50"`
	LastName    string `json:"last_name"     validate:"required,max=50"`
	Email       string `json:"email"         validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	PhoneNumber string `json:"phone_number"  validate:"omitempty,phone"`
}

// Response-only types owned by the transport layer, kept separate from
// domain types so the JSON contract is not coupled to internal changes.

type customerResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"date_of_birth"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type customerListResponse struct {
	Customers []customerResponse `json:"customers"`
	Page      int64              `json:"page"`
	Limit     int64              `json:"limit"`
}

type averageAgeResponse struct {
	AverageAge float64 `json:"average_age"`
}
