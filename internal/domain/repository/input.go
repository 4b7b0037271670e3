package repository

import (
	"context"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

// InputRepository stores the latest raw edit of each metric per session.
// Sessions without stored edits read back as model.DefaultMetricsInput.
type InputRepository interface {
	SetField(ctx context.Context, sessionID string, field model.MetricField, raw string) error
	CurrentValues(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error)
	Delete(ctx context.Context, sessionID string) error
}
