package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/recordkeep/customer-api/internal/core/domain"
	"github.com/recordkeep/customer-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CustomerService implements customer CRUD and the aggregate queries.
// The average-age aggregate is cached; every write invalidates it.
type CustomerService struct {
	repo   ports.CustomerRepository
	cache  ports.AggregateCache
	logger zerolog.Logger
}

// NewCustomerService builds the service. cache may be nil, in which case
// every aggregate read goes to the repository.
func NewCustomerService(repo ports.CustomerRepository, cache ports.AggregateCache, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, cache: cache, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, input ports.CustomerInput) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:          uuid.NewString(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		DateOfBirth: input.DateOfBirth,
		PhoneNumber: input.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := customer.Validate(now); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.invalidateAggregates(ctx)
	return created, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, page, limit int64) ([]*domain.Customer, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.repo.List(ctx, (page-1)*limit, limit)
}

func (s *CustomerService) Update(ctx context.Context, id string, input ports.CustomerInput) (*domain.Customer, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing.FirstName = input.FirstName
	existing.LastName = input.LastName
	existing.Email = input.Email
	existing.DateOfBirth = input.DateOfBirth
	existing.PhoneNumber = input.PhoneNumber
	existing.UpdatedAt = now
	if err := existing.Validate(now); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.invalidateAggregates(ctx)
	return updated, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAggregates(ctx)
	return nil
}

// AverageAge returns the mean age over all customers, serving from the
// cache when it holds a fresh value.
func (s *CustomerService) AverageAge(ctx context.Context) (float64, error) {
	if s.cache != nil {
		if avg, ok, err := s.cache.GetAverageAge(ctx); err == nil && ok {
			return avg, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("average age cache read failed")
		}
	}

	avg, err := s.repo.AverageAge(ctx)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetAverageAge(ctx, avg); err != nil {
			s.logger.Warn().Err(err).Msg("average age cache write failed")
		}
	}
	return avg, nil
}

// ByAgeRange returns customers whose age in whole years lies in
// [minAge, maxAge]. The bounds translate to a birth-date window: born on
// or before now-minAge years, and strictly after now-(maxAge+1) years.
func (s *CustomerService) ByAgeRange(ctx context.Context, minAge, maxAge int) ([]*domain.Customer, error) {
	if minAge < 0 || maxAge < 0 || minAge > maxAge {
		return nil, domain.ErrInvalidAgeRange
	}

	now := time.Now().UTC()
	from := now.AddDate(-(maxAge + 1), 0, 0)
	to := now.AddDate(-minAge, 0, 0)
	return s.repo.FindByBirthDateRange(ctx, from, to)
}

func (s *CustomerService) invalidateAggregates(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAverageAge(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("average age cache invalidation failed")
	}
}
