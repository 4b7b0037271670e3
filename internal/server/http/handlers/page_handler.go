package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/server/http/view"
)

// PageHandler serves the HTML form.
type PageHandler struct {
	facade PredictorFacade
}

// NewPageHandler constructs PageHandler.
func NewPageHandler(facade PredictorFacade) *PageHandler {
	return &PageHandler{facade: facade}
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK)
}

// Predict handles POST /predict.
func (h *PageHandler) Predict(c *gin.Context) {
	sessionID := CurrentSessionID(c)

	values := make(map[string]string, len(model.MetricFields))
	for _, f := range model.MetricFields {
		if v, ok := c.GetPostForm(string(f)); ok {
			values[string(f)] = v
		}
	}
	if err := h.facade.SetFields(c.Request.Context(), sessionID, values); err != nil {
		c.Status(statusFor(err))
		return
	}

	if _, err := h.facade.Submit(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, domainErrors.ErrSubmissionInFlight) {
			h.render(c, http.StatusConflict)
			return
		}
		c.Status(statusFor(err))
		return
	}
	h.render(c, http.StatusOK)
}

func (h *PageHandler) render(c *gin.Context, status int) {
	sessionID := CurrentSessionID(c)
	inputs, err := h.facade.Inputs(c.Request.Context(), sessionID)
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	state, err := h.facade.State(sessionID)
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	c.HTML(status, view.IndexTemplate, view.NewPage(inputs, state))
}
