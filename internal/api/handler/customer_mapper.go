package handler

import (
	"fmt"
	"time"

	"github.com/recordkeep/customer-api/internal/core/domain"
	"github.com/recordkeep/customer-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// toCustomerInput converts the transport shape to the service input,
// parsing the calendar date. The date is interpreted in UTC.
func toCustomerInput(req customerRequest) (ports.CustomerInput, error) {
	dob, err := time.ParseInLocation(dateLayout, req.DateOfBirth, time.UTC)
	if err != nil {
		return ports.CustomerInput{}, fmt.Errorf("date_of_birth must be a date in YYYY-MM-DD format")
	}
	return ports.CustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
		PhoneNumber: req.PhoneNumber,
	}, nil
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		DateOfBirth: c.DateOfBirth.Format(dateLayout),
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCustomerResponses(customers []*domain.Customer) []customerResponse {
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}
