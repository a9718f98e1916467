package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")
var ErrDuplicateEmail = errors.New("a customer with this email already exists")
var ErrInvalidCustomerData = errors.New("invalid customer data")
var ErrInvalidAgeRange = errors.New("min_age must be less than or equal to max_age")

const maxNameLength = 50

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer is a managed customer record. Email is unique across the
// collection; uniqueness is enforced by the storage layer.
type Customer struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Age returns the customer's age in whole years at the given instant.
func (c *Customer) Age(now time.Time) int {
	years := now.Year() - c.DateOfBirth.Year()
	anniversary := c.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// Validate checks the record's field constraints. The returned error
// wraps ErrInvalidCustomerData with the first violated constraint.
func (c *Customer) Validate(now time.Time) error {
	switch {
	case strings.TrimSpace(c.FirstName) == "":
		return fmt.Errorf("%w: first name is required", ErrInvalidCustomerData)
	case len(c.FirstName) > maxNameLength:
		return fmt.Errorf("%w: first name must be less than %d characters", ErrInvalidCustomerData, maxNameLength)
	case strings.TrimSpace(c.LastName) == "":
		return fmt.Errorf("%w: last name is required", ErrInvalidCustomerData)
	case len(c.LastName) > maxNameLength:
		return fmt.Errorf("%w: last name must be less than %d characters", ErrInvalidCustomerData, maxNameLength)
	case strings.TrimSpace(c.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidCustomerData)
	case !emailPattern.MatchString(c.Email):
		return fmt.Errorf("%w: email should be valid", ErrInvalidCustomerData)
	case c.DateOfBirth.IsZero():
		return fmt.Errorf("%w: date of birth is required", ErrInvalidCustomerData)
	case !c.DateOfBirth.Before(now):
		return fmt.Errorf("%w: date of birth must be in the past", ErrInvalidCustomerData)
	case c.PhoneNumber != "" && !phonePattern.MatchString(c.PhoneNumber):
		return fmt.Errorf("%w: phone number should be valid", ErrInvalidCustomerData)
	}
	return nil
}
