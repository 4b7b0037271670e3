package view

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

// FormatCurrency renders v with two decimals. Absent values render as 0.00.
// Rounding applies to the stored binary value, so 1.005 renders as 1.00.
func FormatCurrency(v *float64) string {
	return exactDecimal(model.ValueOrZero(v)).StringFixed(2)
}

// FormatPercent renders a 0..1 probability as a whole percentage.
// The scaling happens in float64 before rounding.
func FormatPercent(v *float64) string {
	return exactDecimal(model.ValueOrZero(v)*100).StringFixed(0) + "%"
}

// exactDecimal expands f digit for digit. NewFromFloat would pick the
// shortest decimal that parses back to f, which moves half-way cases.
func exactDecimal(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	frac, exp := math.Frexp(f)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, five), int32(exp))
}

// Result is a settled prediction ready for display.
type Result struct {
	Predicted30dCLV    string `json:"predicted_30d_clv"`
	ExpectedSpendIfBuy string `json:"expected_spend_if_buy"`
	BuyProbability     string `json:"buy_probability"`
}

// NewResult formats r.
func NewResult(r model.PredictionResult) Result {
	return Result{
		Predicted30dCLV:    FormatCurrency(r.Predicted30dCLV),
		ExpectedSpendIfBuy: FormatCurrency(r.ExpectedSpendIfBuy),
		BuyProbability:     FormatPercent(r.BuyProbability),
	}
}

// Field is one form input.
type Field struct {
	Name        string
	Label       string
	Hint        string
	Placeholder string
	Value       string
}

// Page is the data rendered by the index template.
type Page struct {
	Fields   []Field
	Phase    string
	InFlight bool
	Result   *Result
	Error    string
}

type fieldMeta struct {
	label, hint, placeholder string
}

var fieldLabels = map[model.MetricField]fieldMeta{
	model.FieldTotalOrders:          {"Total Orders", "Lifetime count", "e.g. 30"},
	model.FieldTotalProducts:        {"Total Products", "Items purchased", "e.g. 180"},
	model.FieldReorderRate:          {"Reorder Rate", "Retention %", "0.0 - 1.0"},
	model.FieldAvgDaysBetweenOrders: {"Avg Days Between", "Purchase frequency", "e.g. 7.2"},
	model.FieldRecencyDays:          {"Recency", "Since last order", "Days ago"},
	model.FieldOrdersLast5:          {"Recent Activity", "Orders last 5 days", "Count"},
}

// NewPage builds the page for the given inputs and state.
func NewPage(inputs model.CustomerMetricsInput, state model.SubmissionState) Page {
	page := Page{
		Fields:   make([]Field, 0, len(model.MetricFields)),
		Phase:    string(state.Phase),
		InFlight: state.InFlight(),
	}
	for _, f := range model.MetricFields {
		meta := fieldLabels[f]
		page.Fields = append(page.Fields, Field{
			Name:        string(f),
			Label:       meta.label,
			Hint:        meta.hint,
			Placeholder: meta.placeholder,
			Value:       inputs.Get(f),
		})
	}
	if state.Phase == model.PhaseSettled && state.Result != nil {
		r := NewResult(*state.Result)
		page.Result = &r
	}
	if state.Phase == model.PhaseFailed && state.Err != nil {
		page.Error = state.Err.UserMessage()
	}
	return page
}
