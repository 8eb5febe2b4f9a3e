package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newRecordingTracer(t *testing.T) (*tracetest.SpanRecorder, trace.Tracer) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})
	return recorder, provider.Tracer("test")
}

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("create_calendar_event").
		WithBackend(BackendCalendar).
		WithOperation(OperationSave).
		WithResource("event", "event-1").
		WithReadOnly(false).
		Build()

	want := map[attribute.Key]bool{
		SpanAttrTool:         false,
		SpanAttrBackend:      false,
		SpanAttrOperation:    false,
		SpanAttrResourceType: false,
		SpanAttrResourceID:   false,
		SpanAttrReadOnly:     false,
	}
	for _, attr := range attrs {
		if _, ok := want[attr.Key]; ok {
			want[attr.Key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("missing attribute %s", key)
		}
	}
}

func TestSpanAttributeBuilder_SkipsEmptyResource(t *testing.T) {
	attrs := NewSpanAttributeBuilder().WithResource("", "").Build()
	if len(attrs) != 0 {
		t.Errorf("expected no attributes, got %d", len(attrs))
	}
}

func TestSetSpanError(t *testing.T) {
	recorder, tracer := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "op")
	SetSpanError(span, errors.New("backend unavailable"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected error event on span")
	}
}

func TestSetSpanError_NilIsNoop(t *testing.T) {
	recorder, tracer := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "op")
	SetSpanError(span, nil)
	span.End()

	spans := recorder.Ended()
	if len(spans[0].Events()) != 0 {
		t.Error("nil error must not record an event")
	}
}

func TestGetTraceID(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("expected empty trace ID without span, got %q", id)
	}

	_, tracer := newRecordingTracer(t)
	ctx, span := tracer.Start(context.Background(), "op")
	defer span.End()

	if id := GetTraceID(ctx); id == "" {
		t.Error("expected trace ID within span")
	}
	if id := GetSpanID(ctx); id == "" {
		t.Error("expected span ID within span")
	}
	if s := SpanContextString(ctx); s == "" {
		t.Error("expected span context string within span")
	}
}
