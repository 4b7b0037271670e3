package repository

import "context"

// HealthChecker reports whether the backing store can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
