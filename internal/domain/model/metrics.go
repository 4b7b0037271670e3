package model

// MetricField names one of the six customer-behavior inputs. Values double as wire keys.
type MetricField string

const (
	FieldTotalOrders          MetricField = "total_orders"
	FieldTotalProducts        MetricField = "total_products"
	FieldReorderRate          MetricField = "reorder_rate"
	FieldAvgDaysBetweenOrders MetricField = "avg_days_between_orders"
	FieldRecencyDays          MetricField = "recency_days"
	FieldOrdersLast5          MetricField = "orders_last_5"
)

// MetricFields lists every input field in wire order.
var MetricFields = []MetricField{
	FieldTotalOrders,
	FieldTotalProducts,
	FieldReorderRate,
	FieldAvgDaysBetweenOrders,
	FieldRecencyDays,
	FieldOrdersLast5,
}

// ParseMetricField resolves a field by its wire name.
func ParseMetricField(name string) (MetricField, bool) {
	for _, f := range MetricFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// CustomerMetricsInput keeps the raw, user-edited text of each metric.
// It is a plain value: copies never share state.
type CustomerMetricsInput struct {
	TotalOrders          string
	TotalProducts        string
	ReorderRate          string
	AvgDaysBetweenOrders string
	RecencyDays          string
	OrdersLast5          string
}

// DefaultMetricsInput returns the values a fresh form starts with.
func DefaultMetricsInput() CustomerMetricsInput {
	return CustomerMetricsInput{
		TotalOrders:          "30",
		TotalProducts:        "180",
		ReorderRate:          "0.65",
		AvgDaysBetweenOrders: "7.2",
		RecencyDays:          "3",
		OrdersLast5:          "4",
	}
}

// Get returns the raw value stored for field.
func (in CustomerMetricsInput) Get(field MetricField) string {
	switch field {
	case FieldTotalOrders:
		return in.TotalOrders
	case FieldTotalProducts:
		return in.TotalProducts
	case FieldReorderRate:
		return in.ReorderRate
	case FieldAvgDaysBetweenOrders:
		return in.AvgDaysBetweenOrders
	case FieldRecencyDays:
		return in.RecencyDays
	case FieldOrdersLast5:
		return in.OrdersLast5
	}
	return ""
}

// With returns a copy of in with field overwritten by raw. Unknown fields leave the copy unchanged.
func (in CustomerMetricsInput) With(field MetricField, raw string) CustomerMetricsInput {
	switch field {
	case FieldTotalOrders:
		in.TotalOrders = raw
	case FieldTotalProducts:
		in.TotalProducts = raw
	case FieldReorderRate:
		in.ReorderRate = raw
	case FieldAvgDaysBetweenOrders:
		in.AvgDaysBetweenOrders = raw
	case FieldRecencyDays:
		in.RecencyDays = raw
	case FieldOrdersLast5:
		in.OrdersLast5 = raw
	}
	return in
}

// Map exposes the input keyed by wire name.
func (in CustomerMetricsInput) Map() map[string]string {
	out := make(map[string]string, len(MetricFields))
	for _, f := range MetricFields {
		out[string(f)] = in.Get(f)
	}
	return out
}
