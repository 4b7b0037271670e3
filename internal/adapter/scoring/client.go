package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/usecase"
)

// Client submits payloads to the scoring service. Failures are always *domainErrors.RequestError.
type Client interface {
	Submit(ctx context.Context, payload model.PredictionPayload) (*model.PredictionResult, error)
}

// HTTPClient implements Client via a JSON POST to a fixed endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates scoring client. A zero timeout leaves the request unbounded.
func NewHTTPClient(endpoint string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse predict endpoint: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("predict endpoint must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Endpoint returns the configured target address.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint.String()
}

// Submit posts payload and decodes the prediction. Exactly one call is issued per invocation.
func (c *HTTPClient) Submit(ctx context.Context, payload model.PredictionPayload) (*model.PredictionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domainErrors.Unknown(err.Error(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, domainErrors.Unknown(err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.Error("prediction request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, domainErrors.ServerError(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainErrors.Unknown(err.Error(), err)
	}
	result, err := decodeResult(raw)
	if err != nil {
		c.logger.Warn("prediction response is not valid json", slog.String("error", err.Error()))
		return nil, domainErrors.Unknown(err.Error(), err)
	}
	return result, nil
}

// decodeResult only requires raw to be JSON. Known fields holding numbers or
// numeric strings are kept, anything else leaves the field nil.
func decodeResult(raw []byte) (*model.PredictionResult, error) {
	if !json.Valid(raw) {
		var msg json.RawMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return nil, errors.New("prediction response is not json")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}

	result := &model.PredictionResult{}
	fields, ok := body.(map[string]any)
	if !ok {
		return result, nil
	}
	result.BuyProbability = looseNumber(fields["buy_probability"])
	result.ExpectedSpendIfBuy = looseNumber(fields["expected_spend_if_buy"])
	result.Predicted30dCLV = looseNumber(fields["predicted_30d_clv"])
	return result, nil
}

func looseNumber(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		f = usecase.CoerceNumber(t.String())
	case string:
		f = usecase.CoerceNumber(t)
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// classifyTransportError maps a failed round trip with no response.
// Deadlines and cancellation are not connectivity problems and stay Unknown.
func classifyTransportError(err error) *domainErrors.RequestError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domainErrors.Unknown(err.Error(), err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return domainErrors.Unknown(err.Error(), err)
	}
	return domainErrors.NetworkUnreachable(err)
}
