package ports

import (
	"context"
	"time"

	"github.com/recordkeep/customer-api/internal/core/domain"
)

// CustomerRepository defines the persistence contract for customer
// records. Create and Update must fail with domain.ErrDuplicateEmail when
// the email is already taken by another record.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int64) ([]*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error

	// AverageAge computes the mean age in years over all records,
	// server-side. Returns 0 for an empty collection.
	AverageAge(ctx context.Context) (float64, error)

	// FindByBirthDateRange returns customers born after from (exclusive)
	// and not after to (inclusive).
	FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.Customer, error)
}
