package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/match-analyzer/internal/config"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// startUptrace installs the global OpenTelemetry providers. With logs enabled
// every context-aware log entry is also exported.
func (rt *Runtime) startUptrace(cfg config.Config) (func(context.Context) error, error) {
	logging.SetMirror(nil)

	dsn := strings.TrimSpace(cfg.UptraceDSN)
	if !cfg.UptraceEnabled || dsn == "" {
		rt.logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled, "dsn_set", dsn != "")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newLogMirror(cfg.ServiceVersion))
	}

	rt.logger.Info("uptrace enabled", "environment", cfg.AppEnv, "logs", cfg.UptraceLogsEnabled)
	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
