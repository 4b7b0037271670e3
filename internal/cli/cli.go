// Package cli implements clvctl, a command line front end for one-shot predictions.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/polkiloo/clvpredictor/internal/adapter/scoring"
	"github.com/polkiloo/clvpredictor/internal/controller"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/logger"
	"github.com/polkiloo/clvpredictor/internal/server/http/view"
)

// ErrPredictionFailed reports that the submission settled in the failed state.
var ErrPredictionFailed = errors.New("prediction failed")

var fieldFlags = map[model.MetricField]string{
	model.FieldTotalOrders:          "total-orders",
	model.FieldTotalProducts:        "total-products",
	model.FieldReorderRate:          "reorder-rate",
	model.FieldAvgDaysBetweenOrders: "avg-days-between-orders",
	model.FieldRecencyDays:          "recency-days",
	model.FieldOrdersLast5:          "orders-last-5",
}

// NewApp builds the clvctl application writing results to out and diagnostics to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "clvctl",
		Usage:     "Request 30-day customer lifetime value predictions",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			predictCommand(),
		},
	}
}

func predictCommand() *cli.Command {
	defaults := model.DefaultMetricsInput()
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "endpoint",
			Aliases: []string{"e"},
			Usage:   "Prediction endpoint URL",
			EnvVars: []string{"PREDICT_ENDPOINT"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Request timeout, unset waits as long as the transport does",
			EnvVars: []string{"REQUEST_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "Fail without calling the service when an input is not numeric",
			EnvVars: []string{"STRICT_INPUT"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the outcome as JSON",
		},
	}
	for _, f := range model.MetricFields {
		flags = append(flags, &cli.StringFlag{
			Name:  fieldFlags[f],
			Value: defaults.Get(f),
			Usage: fmt.Sprintf("Raw %s value", f),
		})
	}

	return &cli.Command{
		Name:   "predict",
		Usage:  "Submit customer metrics and print the prediction",
		Flags:  flags,
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	endpoint := c.String("endpoint")
	if endpoint == "" {
		return errors.New("predict endpoint must be provided (--endpoint or PREDICT_ENDPOINT)")
	}

	log := logger.NewWithWriter(c.App.ErrWriter, c.String("log-level"))
	client, err := scoring.NewHTTPClient(endpoint, c.Duration("timeout"), log)
	if err != nil {
		return err
	}
	ctrl := controller.New(client, log, controller.WithStrictInput(c.Bool("strict")))

	input := model.CustomerMetricsInput{}
	for _, f := range model.MetricFields {
		input = input.With(f, c.String(fieldFlags[f]))
	}

	state, err := ctrl.Submit(c.Context, input)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		err = writeJSON(c.App.Writer, state)
	} else {
		err = writeText(c.App.Writer, c.App.ErrWriter, state)
	}
	if err != nil {
		return err
	}
	if state.Phase == model.PhaseFailed {
		return ErrPredictionFailed
	}
	return nil
}

type outcome struct {
	Phase   string                  `json:"phase"`
	Result  *model.PredictionResult `json:"result,omitempty"`
	Display *view.Result            `json:"display,omitempty"`
	Error   *outcomeError           `json:"error,omitempty"`
}

type outcomeError struct {
	Kind    string `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w io.Writer, state model.SubmissionState) error {
	out := outcome{Phase: string(state.Phase)}
	if state.Result != nil {
		display := view.NewResult(*state.Result)
		out.Result = state.Result
		out.Display = &display
	}
	if state.Err != nil {
		out.Error = &outcomeError{
			Kind:    string(state.Err.Kind),
			Status:  state.Err.Status,
			Message: state.Err.UserMessage(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w, errOut io.Writer, state model.SubmissionState) error {
	if state.Phase == model.PhaseFailed && state.Err != nil {
		_, err := fmt.Fprintf(errOut, "Request Failed: %s\n", state.Err.UserMessage())
		return err
	}
	if state.Result == nil {
		return nil
	}
	display := view.NewResult(*state.Result)
	_, err := fmt.Fprintf(w,
		"Predicted CLV (30 Days): $%s\nExpected Spend:          $%s\nBuy Probability:         %s\n",
		display.Predicted30dCLV, display.ExpectedSpendIfBuy, display.BuyProbability,
	)
	return err
}
