package model

// PredictionResult carries the scoring service response. Absent fields stay nil.
type PredictionResult struct {
	BuyProbability     *float64 `json:"buy_probability,omitempty"`
	ExpectedSpendIfBuy *float64 `json:"expected_spend_if_buy,omitempty"`
	Predicted30dCLV    *float64 `json:"predicted_30d_clv,omitempty"`
}

// ValueOrZero dereferences an optional result field.
func ValueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
