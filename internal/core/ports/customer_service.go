package ports

import (
	"context"
	"time"

	"github.com/recordkeep/customer-api/internal/core/domain"
)

// CustomerInput carries the writable fields of a customer record.
type CustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	PhoneNumber string
}

type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, page, limit int64) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	AverageAge(ctx context.Context) (float64, error)
	ByAgeRange(ctx context.Context, minAge, maxAge int) ([]*domain.Customer, error)
}
