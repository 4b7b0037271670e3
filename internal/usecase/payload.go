package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

// BuildPayload coerces every field of input independently. It never fails:
// values that are not numbers become NaN and are still part of the payload.
func BuildPayload(input model.CustomerMetricsInput) model.PredictionPayload {
	return model.PredictionPayload{
		TotalOrders:          CoerceNumber(input.TotalOrders),
		TotalProducts:        CoerceNumber(input.TotalProducts),
		ReorderRate:          CoerceNumber(input.ReorderRate),
		AvgDaysBetweenOrders: CoerceNumber(input.AvgDaysBetweenOrders),
		RecencyDays:          CoerceNumber(input.RecencyDays),
		OrdersLast5:          CoerceNumber(input.OrdersLast5),
	}
}

// CoerceNumber converts raw form text to a number. Blank text is zero.
func CoerceNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.ContainsRune(s, '_') {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ValidatePayload rejects payloads holding values the wire format cannot carry as numbers.
func ValidatePayload(payload model.PredictionPayload) error {
	bad := payload.NonFinite()
	if len(bad) == 0 {
		return nil
	}
	names := make([]string, 0, len(bad))
	for _, f := range bad {
		names = append(names, string(f))
	}
	return fmt.Errorf("%w: %s", domainErrors.ErrNonNumericInput, strings.Join(names, ", "))
}
