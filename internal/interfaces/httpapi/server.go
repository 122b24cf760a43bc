package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

// RouterOptions configures the middleware chain around the API routes.
type RouterOptions struct {
	ServiceName        string
	CORSAllowedOrigins []string
	// Metrics enables GET /metrics and per-route latency histograms.
	Metrics *prometheus.Registry
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "team-management-app"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerRosterRoutes(mux, handler)
	registerLineupRoutes(mux, handler)

	var routes http.Handler = mux
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{Registry: opts.Metrics}))
		routes = RequestMetrics(opts.Metrics, mux)
	}

	return RequestTracing(opts.ServiceName, RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, routes))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
