package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	testhelpers "github.com/polkiloo/clvpredictor/internal/test"
)

func TestInputUseCaseSetField(t *testing.T) {
	repo := testhelpers.NewInputRepositoryStub()
	uc := NewInputUseCase(repo)

	if err := uc.SetField(context.Background(), "s1", "recency_days", "not a number"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, err := uc.CurrentValues(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values.RecencyDays != "not a number" {
		t.Fatalf("expected raw value to be stored, got %q", values.RecencyDays)
	}
	if values.TotalOrders != "30" {
		t.Fatalf("expected defaults for untouched fields, got %q", values.TotalOrders)
	}
}

func TestInputUseCaseRejectsUnknownField(t *testing.T) {
	repo := testhelpers.NewInputRepositoryStub()
	uc := NewInputUseCase(repo)

	err := uc.SetField(context.Background(), "s1", "clv", "1")
	if !errors.Is(err, domainErrors.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	err = uc.SetFields(context.Background(), "s1", map[string]string{"total_orders": "9", "clv": "1"})
	if !errors.Is(err, domainErrors.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	values, _ := uc.CurrentValues(context.Background(), "s1")
	if values.TotalOrders != "30" {
		t.Fatalf("expected no partial write on unknown field, got %q", values.TotalOrders)
	}
}

func TestInputUseCaseSetFieldsAndDiscard(t *testing.T) {
	repo := testhelpers.NewInputRepositoryStub()
	uc := NewInputUseCase(repo)

	err := uc.SetFields(context.Background(), "s1", map[string]string{
		"total_orders":  "12",
		"orders_last_5": "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, _ := uc.CurrentValues(context.Background(), "s1")
	if values.TotalOrders != "12" || values.OrdersLast5 != "" {
		t.Fatalf("unexpected values %+v", values)
	}

	if err := uc.Discard(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, _ = uc.CurrentValues(context.Background(), "s1")
	if values != model.DefaultMetricsInput() {
		t.Fatalf("expected defaults after discard, got %+v", values)
	}
}

func TestInputUseCasePropagatesStorageErrors(t *testing.T) {
	repo := testhelpers.NewInputRepositoryStub()
	repo.SetFn = func(context.Context, string, model.MetricField, string) error { return errors.New("db down") }
	uc := NewInputUseCase(repo)

	if err := uc.SetField(context.Background(), "s1", "total_orders", "1"); err == nil {
		t.Fatal("expected storage error")
	}
}
