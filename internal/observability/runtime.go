// Package observability starts process-wide telemetry: Uptrace traces and
// logs, Pyroscope continuous profiling and an optional pprof listener.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/match-analyzer/internal/config"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
)

type stopper struct {
	name string
	stop func(context.Context) error
}

// Runtime owns whatever Start switched on.
type Runtime struct {
	logger   *logging.Logger
	stoppers []stopper
}

// Start enables each component its config turns on. On error, components
// already started are stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger.Named("observability")}

	steps := []struct {
		name  string
		start func(config.Config) (func(context.Context) error, error)
	}{
		{"uptrace", rt.startUptrace},
		{"pyroscope", rt.startPyroscope},
		{"pprof", rt.startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg)
		if err != nil {
			_ = rt.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			rt.stoppers = append(rt.stoppers, stopper{name: step.name, stop: stop})
		}
	}
	return rt, nil
}

// Enabled lists started components in start order.
func (rt *Runtime) Enabled() []string {
	names := make([]string, 0, len(rt.stoppers))
	for _, s := range rt.stoppers {
		names = append(names, s.name)
	}
	return names
}

// Shutdown stops components in reverse start order. It is safe to call more
// than once.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(rt.stoppers) - 1; i >= 0; i-- {
		s := rt.stoppers[i]
		if err := s.stop(ctx); err != nil {
			rt.logger.Error("stop telemetry component", "component", s.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	rt.stoppers = nil
	return errors.Join(errs...)
}
