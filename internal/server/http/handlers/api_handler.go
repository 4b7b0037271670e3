package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/server/http/dto"
)

// APIHandler exposes the input store and controller as JSON.
type APIHandler struct {
	facade PredictorFacade
}

// NewAPIHandler constructs APIHandler.
func NewAPIHandler(facade PredictorFacade) *APIHandler {
	return &APIHandler{facade: facade}
}

// Inputs handles GET /api/inputs.
func (h *APIHandler) Inputs(c *gin.Context) {
	inputs, err := h.facade.Inputs(c.Request.Context(), CurrentSessionID(c))
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	c.JSON(http.StatusOK, toInputsResponse(inputs))
}

// SetField handles PUT /api/inputs/:field.
func (h *APIHandler) SetField(c *gin.Context) {
	var req dto.FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		c.Status(http.StatusBadRequest)
		return
	}

	sessionID := CurrentSessionID(c)
	if err := h.facade.SetField(c.Request.Context(), sessionID, c.Param("field"), *req.Value); err != nil {
		c.Status(statusFor(err))
		return
	}
	h.Inputs(c)
}

// Predict handles POST /api/predict.
func (h *APIHandler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Status(http.StatusBadRequest)
		return
	}

	sessionID := CurrentSessionID(c)
	if len(req) > 0 {
		if err := h.facade.SetFields(c.Request.Context(), sessionID, req); err != nil {
			c.Status(statusFor(err))
			return
		}
	}

	state, err := h.facade.Submit(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, toStateResponse(state))
			return
		}
		c.Status(statusFor(err))
		return
	}
	c.JSON(http.StatusOK, toStateResponse(state))
}

// State handles GET /api/state.
func (h *APIHandler) State(c *gin.Context) {
	state, err := h.facade.State(CurrentSessionID(c))
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	c.JSON(http.StatusOK, toStateResponse(state))
}
