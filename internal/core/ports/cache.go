package ports

import "context"

// AggregateCache stores computed customer aggregates so hot read paths
// skip the database. A miss is (0, false, nil); errors are reserved for
// backend failures and callers are expected to fall through to the
// repository on either.
type AggregateCache interface {
	GetAverageAge(ctx context.Context) (value float64, ok bool, err error)
	SetAverageAge(ctx context.Context, value float64) error
	InvalidateAverageAge(ctx context.Context) error
}
