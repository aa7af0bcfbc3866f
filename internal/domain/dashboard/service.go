package dashboard

import "context"

type Service interface {
	// GetStatistics runs the one-shot pull: independent aggregation queries
	// fanned out concurrently, then merged into one snapshot.
	GetStatistics(ctx context.Context) (Statistics, error)

	// GetCachedStatistics returns the pre-warmed cache copy.
	GetCachedStatistics(ctx context.Context) (Statistics, error)

	// RefreshCache recomputes the snapshot and writes it back to the cache.
	RefreshCache(ctx context.Context) error

	// GetEmployeeStatistics computes the per-employee lifetime aggregate.
	GetEmployeeStatistics(ctx context.Context, employeeID string) (EmployeeStatistics, error)

	// Subscribe streams dashboard snapshots: a fast partial snapshot first,
	// then a full one, then a recomputed snapshot after every collection
	// change. Cleanup cancels this subscriber only.
	Subscribe(ctx context.Context) (<-chan Statistics, func(), error)
}
