package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/server/http/dto"
	"github.com/polkiloo/clvpredictor/internal/server/http/middleware"
	"github.com/polkiloo/clvpredictor/internal/server/http/view"
)

// CurrentSessionID extracts the session identifier from context.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(middleware.SessionIDContextKey)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrSessionNotFound), errors.Is(err, domainErrors.ErrControllerClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func toInputsResponse(in model.CustomerMetricsInput) dto.InputsResponse {
	return dto.InputsResponse{
		TotalOrders:          in.TotalOrders,
		TotalProducts:        in.TotalProducts,
		ReorderRate:          in.ReorderRate,
		AvgDaysBetweenOrders: in.AvgDaysBetweenOrders,
		RecencyDays:          in.RecencyDays,
		OrdersLast5:          in.OrdersLast5,
	}
}

func toStateResponse(state model.SubmissionState) dto.StateResponse {
	resp := dto.StateResponse{
		Phase:    string(state.Phase),
		InFlight: state.InFlight(),
	}
	if state.Result != nil {
		display := view.NewResult(*state.Result)
		resp.Result = &dto.ResultResponse{
			BuyProbability:     state.Result.BuyProbability,
			ExpectedSpendIfBuy: state.Result.ExpectedSpendIfBuy,
			Predicted30dCLV:    state.Result.Predicted30dCLV,
			Display: dto.DisplayResponse{
				Predicted30dCLV:    display.Predicted30dCLV,
				ExpectedSpendIfBuy: display.ExpectedSpendIfBuy,
				BuyProbability:     display.BuyProbability,
			},
		}
	}
	if state.Err != nil {
		resp.Error = &dto.ErrorResponse{
			Kind:    string(state.Err.Kind),
			Status:  state.Err.Status,
			Message: state.Err.UserMessage(),
		}
	}
	return resp
}
