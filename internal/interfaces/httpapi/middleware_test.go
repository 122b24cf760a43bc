package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantVary   bool
		wantStatus int
	}{
		{name: "configured origin", allowed: []string{"https://lineup.example.com"}, method: http.MethodGet,
			origin: "https://lineup.example.com", wantOrigin: "https://lineup.example.com", wantVary: true, wantStatus: http.StatusOK},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions,
			origin: "https://lineup.example.com", wantOrigin: "*", wantStatus: http.StatusNoContent},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet,
			origin: "https://other.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodOptions, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/v1/teams", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("Vary set=%v want=%v", got, tt.wantVary)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/teams", "/v1/drafts/d-1/commit", "/"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequestLogging_FailedRequestsLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Format: logging.FormatJSON, Output: &buf})

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/teams", nil))

	out := buf.String()
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, "http request failed") {
		t.Fatalf("expected a warn entry, got %s", out)
	}
	if !strings.Contains(out, `"status":503`) {
		t.Fatalf("expected status field, got %s", out)
	}
}

func TestRequestMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/matches/{matchID}/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestMetrics(reg, mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/matches/m-1/stats", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/matches/m-2/stats", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected one metric family, got %d", len(families))
	}

	counts := map[string]uint64{}
	for _, m := range families[0].GetMetric() {
		labels := map[string]string{}
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		counts[labels["route"]+" "+labels["status"]] = m.GetHistogram().GetSampleCount()
	}
	if counts["GET /v1/matches/{matchID}/stats 200"] != 2 {
		t.Fatalf("unexpected route samples: %v", counts)
	}
	if counts["unmatched 404"] != 1 {
		t.Fatalf("unexpected unmatched samples: %v", counts)
	}
}
