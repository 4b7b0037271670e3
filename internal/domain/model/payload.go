package model

import (
	"encoding/json"
	"math"
)

// PredictionPayload is the numeric, wire-ready form of CustomerMetricsInput.
// Fields that failed coercion hold NaN.
type PredictionPayload struct {
	TotalOrders          float64
	TotalProducts        float64
	ReorderRate          float64
	AvgDaysBetweenOrders float64
	RecencyDays          float64
	OrdersLast5          float64
}

// wirePayload mirrors the JSON body expected by the scoring service.
type wirePayload struct {
	TotalOrders          *float64 `json:"total_orders"`
	TotalProducts        *float64 `json:"total_products"`
	ReorderRate          *float64 `json:"reorder_rate"`
	AvgDaysBetweenOrders *float64 `json:"avg_days_between_orders"`
	RecencyDays          *float64 `json:"recency_days"`
	OrdersLast5          *float64 `json:"orders_last_5"`
}

// Value returns the coerced number for field.
func (p PredictionPayload) Value(field MetricField) float64 {
	switch field {
	case FieldTotalOrders:
		return p.TotalOrders
	case FieldTotalProducts:
		return p.TotalProducts
	case FieldReorderRate:
		return p.ReorderRate
	case FieldAvgDaysBetweenOrders:
		return p.AvgDaysBetweenOrders
	case FieldRecencyDays:
		return p.RecencyDays
	case FieldOrdersLast5:
		return p.OrdersLast5
	}
	return math.NaN()
}

// NonFinite lists fields whose value cannot be represented as a JSON number.
func (p PredictionPayload) NonFinite() []MetricField {
	var out []MetricField
	for _, f := range MetricFields {
		if !finite(p.Value(f)) {
			out = append(out, f)
		}
	}
	return out
}

// MarshalJSON writes non-finite values as null.
func (p PredictionPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePayload{
		TotalOrders:          number(p.TotalOrders),
		TotalProducts:        number(p.TotalProducts),
		ReorderRate:          number(p.ReorderRate),
		AvgDaysBetweenOrders: number(p.AvgDaysBetweenOrders),
		RecencyDays:          number(p.RecencyDays),
		OrdersLast5:          number(p.OrdersLast5),
	})
}

func number(v float64) *float64 {
	if !finite(v) {
		return nil
	}
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
