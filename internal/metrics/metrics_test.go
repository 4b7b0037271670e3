package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if outcome == "" {
				return m.GetCounter().GetValue()
			}
			for _, label := range m.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRecorderObservesOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder()
	if err := rec.Register(reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	rec.ObserveSubmission(100*time.Millisecond, nil)
	rec.ObserveSubmission(time.Second, domainErrors.ServerError(500))
	rec.ObserveSubmission(-time.Second, domainErrors.NetworkUnreachable(nil))
	rec.ObserveSubmission(time.Second, domainErrors.Unknown("bad json", nil))
	rec.ObserveRejected()
	rec.ObserveRejected()

	cases := map[string]float64{
		OutcomeSettled:            1,
		OutcomeServerError:        1,
		OutcomeNetworkUnreachable: 1,
		OutcomeUnknown:            1,
	}
	for outcome, want := range cases {
		if got := counterValue(t, reg, "clv_predictor_submissions_total", outcome); got != want {
			t.Errorf("expected %v for %s, got %v", want, outcome, got)
		}
	}
	if got := counterValue(t, reg, "clv_predictor_rejected_submissions_total", ""); got != 2 {
		t.Errorf("expected 2 rejections, got %v", got)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder()
	if err := rec.Register(reg); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := rec.Register(reg); err != nil {
		t.Fatalf("second register should tolerate duplicates, got %v", err)
	}
}
