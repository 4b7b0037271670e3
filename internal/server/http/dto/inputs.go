package dto

// FieldRequest carries one raw field edit.
type FieldRequest struct {
	Value *string `json:"value"`
}

// PredictRequest optionally overrides any of the six fields before submitting.
type PredictRequest map[string]string

// InputsResponse lists the raw values of the session's input store.
type InputsResponse struct {
	TotalOrders          string `json:"total_orders"`
	TotalProducts        string `json:"total_products"`
	ReorderRate          string `json:"reorder_rate"`
	AvgDaysBetweenOrders string `json:"avg_days_between_orders"`
	RecencyDays          string `json:"recency_days"`
	OrdersLast5          string `json:"orders_last_5"`
}
