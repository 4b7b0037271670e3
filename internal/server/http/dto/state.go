package dto

// StateResponse describes a SubmissionState.
type StateResponse struct {
	Phase    string          `json:"phase"`
	InFlight bool            `json:"in_flight"`
	Result   *ResultResponse `json:"result,omitempty"`
	Error    *ErrorResponse  `json:"error,omitempty"`
}

// ResultResponse holds the raw prediction alongside its display form.
type ResultResponse struct {
	BuyProbability     *float64        `json:"buy_probability"`
	ExpectedSpendIfBuy *float64        `json:"expected_spend_if_buy"`
	Predicted30dCLV    *float64        `json:"predicted_30d_clv"`
	Display            DisplayResponse `json:"display"`
}

// DisplayResponse is the formatted result.
type DisplayResponse struct {
	Predicted30dCLV    string `json:"predicted_30d_clv"`
	ExpectedSpendIfBuy string `json:"expected_spend_if_buy"`
	BuyProbability     string `json:"buy_probability"`
}

// ErrorResponse describes a classified request failure.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

// StatusResponse is a generic status body.
type StatusResponse struct {
	Status string `json:"status"`
}
