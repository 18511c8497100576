package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/league-elo/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /READYZ ", want: false},
		{path: "/livez", want: false},
		{path: "/v1/seasons", want: true},
		{path: "/v1/seasons/pl/odds", want: true},
		{path: "/", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.ListStandings", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldCreateHTTPAPISpan(tt.in); got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartSpan_WithoutParentKeepsContext(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, handlerSpanPrefix+"GetOdds")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected the same context back")
	}
	if trace.SpanFromContext(got).SpanContext().IsValid() {
		t.Fatalf("expected no recording span without a parent")
	}
}

func TestRequestLogging_PassesResponseThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	})
	handler := RequestLogging(logging.NewNop(), next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons?format=csv", nil))

	if rec.Code != http.StatusServiceUnavailable || rec.Body.String() != "down" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}
}
