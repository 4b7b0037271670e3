package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/domain/repository"
)

// InputUseCase is the Metrics Input Store: it records raw edits without validating them.
type InputUseCase struct {
	inputs repository.InputRepository
}

// NewInputUseCase constructs InputUseCase.
func NewInputUseCase(inputs repository.InputRepository) *InputUseCase {
	return &InputUseCase{inputs: inputs}
}

// SetField overwrites the current value of the named field.
func (u *InputUseCase) SetField(ctx context.Context, sessionID, name, raw string) error {
	field, ok := model.ParseMetricField(name)
	if !ok {
		return fmt.Errorf("%w: %q", domainErrors.ErrUnknownField, name)
	}
	return u.inputs.SetField(ctx, sessionID, field, raw)
}

// SetFields applies several edits in field order.
func (u *InputUseCase) SetFields(ctx context.Context, sessionID string, values map[string]string) error {
	for name := range values {
		if _, ok := model.ParseMetricField(name); !ok {
			return fmt.Errorf("%w: %q", domainErrors.ErrUnknownField, name)
		}
	}
	for _, f := range model.MetricFields {
		raw, ok := values[string(f)]
		if !ok {
			continue
		}
		if err := u.inputs.SetField(ctx, sessionID, f, raw); err != nil {
			return err
		}
	}
	return nil
}

// CurrentValues returns the full current field set.
func (u *InputUseCase) CurrentValues(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error) {
	return u.inputs.CurrentValues(ctx, sessionID)
}

// Discard drops everything stored for the session.
func (u *InputUseCase) Discard(ctx context.Context, sessionID string) error {
	return u.inputs.Delete(ctx, sessionID)
}
