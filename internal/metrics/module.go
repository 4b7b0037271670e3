package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module provides the recorder and registers it with the default Prometheus registry.
var Module = fx.Options(
	fx.Provide(
		NewRecorder,
		func() prometheus.Registerer { return prometheus.DefaultRegisterer },
		func() prometheus.Gatherer { return prometheus.DefaultGatherer },
	),
	fx.Invoke(func(r *Recorder, reg prometheus.Registerer) error {
		return r.Register(reg)
	}),
)
