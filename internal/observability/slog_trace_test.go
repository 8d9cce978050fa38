package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/sikmo/useradmin/internal/observability"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceHandlerStampsSpanIDs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(observability.NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

	traceID, err := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	if err != nil {
		t.Fatalf("failed to build trace id: %v", err)
	}

	spanID, err := trace.SpanIDFromHex("b7ad6b7169203331")
	if err != nil {
		t.Fatalf("failed to build span id: %v", err)
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	log.InfoContext(ctx, "user updated")

	line := buf.String()

	if !strings.Contains(line, `"trace_id":"0af7651916cd43dd8448eb211c80319c"`) {
		t.Fatalf("log line is missing the trace id: %s", line)
	}

	if !strings.Contains(line, `"span_id":"b7ad6b7169203331"`) {
		t.Fatalf("log line is missing the span id: %s", line)
	}
}

func TestTraceHandlerNoSpan(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(observability.NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

	log.InfoContext(context.Background(), "user updated")

	if strings.Contains(buf.String(), "trace_id") {
		t.Fatalf("no trace id should be stamped without an active span: %s", buf.String())
	}
}
