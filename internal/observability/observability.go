// Package observability starts the tracing and profiling exporters of the
// API process.
package observability

import (
	"context"
	"errors"

	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fbsn11/team-management-app/internal/config"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

// Shutdown flushes and stops whatever Start enabled.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Start enables Uptrace tracing and Pyroscope profiling as configured. A
// disabled exporter is skipped; the returned Shutdown is never nil.
func Start(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	stopTracing := startTracing(cfg, logger)
	stopProfiling, err := startProfiling(cfg, logger)
	if err != nil {
		return nil, errors.Join(err, stopTracing(context.Background()))
	}

	return func(ctx context.Context) error {
		return errors.Join(stopProfiling(ctx), stopTracing(ctx))
	}, nil
}

func startTracing(cfg config.Config, logger *logging.Logger) Shutdown {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Info("tracing disabled", "uptrace_enabled", cfg.UptraceEnabled)
		return noop
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("storage.driver", cfg.StorageDriver)),
	)
	logger.Info("tracing enabled", "exporter", "uptrace", "storage", cfg.StorageDriver)
	return uptrace.Shutdown
}

func startProfiling(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled")
		return noop, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
			"storage": cfg.StorageDriver,
		},
		ProfileTypes: profileTypes(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("profiling enabled", "exporter", "pyroscope", "application", cfg.PyroscopeAppName)
	return func(context.Context) error { return profiler.Stop() }, nil
}

// profileTypes keeps production to the cheap profiles; lock contention
// profiling is only collected outside prod.
func profileTypes(env string) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if env == config.EnvProd {
		return types
	}
	return append(types,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
	)
}
