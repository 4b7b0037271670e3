package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
)

const (
	// OutcomeSettled labels submissions that produced a prediction.
	OutcomeSettled = "settled"
	// OutcomeNetworkUnreachable labels submissions that never reached the scoring service.
	OutcomeNetworkUnreachable = "network_unreachable"
	// OutcomeServerError labels non-2xx responses.
	OutcomeServerError = "server_error"
	// OutcomeUnknown labels every other failure.
	OutcomeUnknown = "unknown"
)

// Recorder owns the submission collectors.
type Recorder struct {
	submissions *prometheus.CounterVec
	duration    prometheus.Histogram
	rejected    prometheus.Counter
}

// NewRecorder builds unregistered collectors.
func NewRecorder() *Recorder {
	return &Recorder{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clv_predictor",
				Name:      "submissions_total",
				Help:      "Total number of settled submissions, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "clv_predictor",
				Name:      "submission_seconds",
				Help:      "Round trip latency of prediction submissions in seconds.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		rejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "clv_predictor",
				Name:      "rejected_submissions_total",
				Help:      "Submissions ignored because another one was in flight.",
			},
		),
	}
}

// Register attaches collectors to the supplied Prometheus registerer.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		r.submissions,
		r.duration,
		r.rejected,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveSubmission records a resolved submission. A nil err counts as settled.
func (r *Recorder) ObserveSubmission(duration time.Duration, err *domainErrors.RequestError) {
	r.submissions.WithLabelValues(Outcome(err)).Inc()
	if duration < 0 {
		duration = 0
	}
	r.duration.Observe(duration.Seconds())
}

// ObserveRejected counts a submit attempt dropped by the in-flight guard.
func (r *Recorder) ObserveRejected() {
	r.rejected.Inc()
}

// Outcome maps a submission result to its label.
func Outcome(err *domainErrors.RequestError) string {
	if err == nil {
		return OutcomeSettled
	}
	switch err.Kind {
	case domainErrors.KindNetworkUnreachable:
		return OutcomeNetworkUnreachable
	case domainErrors.KindServerError:
		return OutcomeServerError
	default:
		return OutcomeUnknown
	}
}
