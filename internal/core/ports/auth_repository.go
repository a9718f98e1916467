package ports

import (
	"context"

	"github.com/recordkeep/customer-api/internal/core/domain"
)

// UserRepository defines the persistence contract for identities.
// Create must fail with domain.ErrUserExists when the username is taken;
// uniqueness is the storage layer's responsibility, so exactly one of two
// concurrent creates for the same username wins.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
