package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("team-management-app/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// routeParams are the path wildcards copied onto handler spans.
var routeParams = []string{"teamID", "playerID", "matchID", "lineupID", "draftID"}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// untraced route such as /healthz
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

// startHandlerSpan opens the span of one route handler and tags it with
// the ids found in the request path.
func startHandlerSpan(r *http.Request, handler string) (context.Context, trace.Span) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler."+handler)
	if !span.IsRecording() {
		return ctx, span
	}
	for _, param := range routeParams {
		if v := r.PathValue(param); v != "" {
			span.SetAttributes(attribute.String("app."+param, v))
		}
	}
	return ctx, span
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
