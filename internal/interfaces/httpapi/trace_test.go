package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.CommitDraft", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartHandlerSpan_UntracedRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/drafts/d-1/commit", nil)
	req.SetPathValue("draftID", "d-1")

	ctx, span := startHandlerSpan(req, "CommitDraft")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected no span for an untraced request")
	}
	if ctx != req.Context() {
		t.Fatalf("expected the request context to pass through unchanged")
	}
}
