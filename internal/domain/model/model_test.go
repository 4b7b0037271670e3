package model

import (
	"encoding/json"
	"math"
	"testing"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
)

func TestMetricFieldValues(t *testing.T) {
	cases := []struct {
		got   MetricField
		value string
	}{
		{FieldTotalOrders, "total_orders"},
		{FieldTotalProducts, "total_products"},
		{FieldReorderRate, "reorder_rate"},
		{FieldAvgDaysBetweenOrders, "avg_days_between_orders"},
		{FieldRecencyDays, "recency_days"},
		{FieldOrdersLast5, "orders_last_5"},
	}

	if len(MetricFields) != len(cases) {
		t.Fatalf("expected %d fields, got %d", len(cases), len(MetricFields))
	}
	for i, tc := range cases {
		if string(tc.got) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.got)
		}
		if MetricFields[i] != tc.got {
			t.Fatalf("expected field %d to be %s, got %s", i, tc.got, MetricFields[i])
		}
		parsed, ok := ParseMetricField(tc.value)
		if !ok || parsed != tc.got {
			t.Fatalf("expected %s to parse, got %q %v", tc.value, parsed, ok)
		}
	}

	if _, ok := ParseMetricField("lifetime_value"); ok {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestInputWithIsCopy(t *testing.T) {
	base := DefaultMetricsInput()
	updated := base.With(FieldRecencyDays, "12")

	if base.RecencyDays != "3" {
		t.Fatalf("expected original to stay untouched, got %q", base.RecencyDays)
	}
	if updated.Get(FieldRecencyDays) != "12" {
		t.Fatalf("expected updated value, got %q", updated.Get(FieldRecencyDays))
	}
	if got := updated.Map()["total_orders"]; got != "30" {
		t.Fatalf("expected other fields to be preserved, got %q", got)
	}
}

func TestPayloadMarshalJSON(t *testing.T) {
	payload := PredictionPayload{
		TotalOrders:          30,
		TotalProducts:        180,
		ReorderRate:          0.65,
		AvgDaysBetweenOrders: 7.2,
		RecencyDays:          3,
		OrdersLast5:          4,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"total_orders":30,"total_products":180,"reorder_rate":0.65,"avg_days_between_orders":7.2,"recency_days":3,"orders_last_5":4}`
	if string(body) != want {
		t.Fatalf("expected %s, got %s", want, body)
	}
}

func TestPayloadMarshalNonFiniteAsNull(t *testing.T) {
	payload := PredictionPayload{TotalOrders: math.NaN(), RecencyDays: math.Inf(1)}

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["total_orders"] != nil || decoded["recency_days"] != nil {
		t.Fatalf("expected nulls for non-finite values, got %s", body)
	}
	if decoded["total_products"] != float64(0) {
		t.Fatalf("expected zero to stay numeric, got %v", decoded["total_products"])
	}

	nonFinite := payload.NonFinite()
	if len(nonFinite) != 2 || nonFinite[0] != FieldTotalOrders || nonFinite[1] != FieldRecencyDays {
		t.Fatalf("unexpected non-finite fields %v", nonFinite)
	}
}

func TestResultDecodeMissingFields(t *testing.T) {
	var result PredictionResult
	if err := json.Unmarshal([]byte(`{"buy_probability":0.99,"predicted_30d_clv":8.87}`), &result); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if result.ExpectedSpendIfBuy != nil {
		t.Fatalf("expected missing field to stay nil")
	}
	if ValueOrZero(result.ExpectedSpendIfBuy) != 0 {
		t.Fatalf("expected zero default")
	}
	if ValueOrZero(result.Predicted30dCLV) != 8.87 {
		t.Fatalf("expected 8.87, got %v", ValueOrZero(result.Predicted30dCLV))
	}
}

func TestSubmissionStateConstructors(t *testing.T) {
	if s := IdleState(); s.Phase != PhaseIdle || s.InFlight() {
		t.Fatalf("unexpected idle state %+v", s)
	}
	if s := SubmittingState(); !s.InFlight() || s.Result != nil || s.Err != nil {
		t.Fatalf("unexpected submitting state %+v", s)
	}
	if s := SettledState(PredictionResult{}); s.Phase != PhaseSettled || s.Result == nil || s.Err != nil {
		t.Fatalf("unexpected settled state %+v", s)
	}
	if s := FailedState(domainErrors.ServerError(500)); s.Phase != PhaseFailed || s.Err == nil || s.Result != nil {
		t.Fatalf("unexpected failed state %+v", s)
	}
}
