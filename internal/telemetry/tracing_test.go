package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecordingTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return exporter
}

func TestStartSpan(t *testing.T) {
	exporter := setupRecordingTracer(t)

	ctx, span := StartSpan(context.Background(), "place order")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "place order" {
		t.Errorf("expected span name %q, got %q", "place order", spans[0].Name)
	}
	if TraceID(ctx) == "" {
		t.Error("expected context to carry a trace id")
	}
}

func TestSpanHelpers(t *testing.T) {
	t.Run("attributes and events are recorded", func(t *testing.T) {
		exporter := setupRecordingTracer(t)

		_, span := StartSpan(context.Background(), "test")
		AddSpanAttributes(span, attribute.Int64("order.id", 42))
		AddSpanEvent(span, "stock decremented", attribute.Int64("product.id", 7))
		span.End()

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}

		foundAttr := false
		for _, attr := range spans[0].Attributes {
			if attr.Key == "order.id" && attr.Value.AsInt64() == 42 {
				foundAttr = true
			}
		}
		if !foundAttr {
			t.Error("expected order.id attribute on span")
		}

		if len(spans[0].Events) != 1 || spans[0].Events[0].Name != "stock decremented" {
			t.Errorf("expected one event %q, got %+v", "stock decremented", spans[0].Events)
		}
	})

	t.Run("record error sets error status", func(t *testing.T) {
		exporter := setupRecordingTracer(t)

		_, span := StartSpan(context.Background(), "test")
		RecordSpanError(span, errors.New("boom"))
		span.End()

		spans := exporter.GetSpans()
		if spans[0].Status.Code != codes.Error {
			t.Errorf("expected error status, got %v", spans[0].Status.Code)
		}
		if len(spans[0].Events) == 0 {
			t.Error("expected an exception event on the span")
		}
	})

	t.Run("set success sets ok status", func(t *testing.T) {
		exporter := setupRecordingTracer(t)

		_, span := StartSpan(context.Background(), "test")
		SetSpanSuccess(span)
		span.End()

		spans := exporter.GetSpans()
		if spans[0].Status.Code != codes.Ok {
			t.Errorf("expected ok status, got %v", spans[0].Status.Code)
		}
	})

	t.Run("nil span and nil error are no-ops", func(t *testing.T) {
		AddSpanAttributes(nil, attribute.String("k", "v"))
		AddSpanEvent(nil, "event")
		RecordSpanError(nil, errors.New("boom"))
		SetSpanSuccess(nil)

		setupRecordingTracer(t)
		_, span := StartSpan(context.Background(), "test")
		RecordSpanError(span, nil)
		span.End()
	})
}

func TestTraceAndSpanIDs(t *testing.T) {
	t.Run("empty without an active span", func(t *testing.T) {
		ctx := context.Background()

		if got := TraceID(ctx); got != "" {
			t.Errorf("expected empty trace id, got %q", got)
		}
		if got := SpanID(ctx); got != "" {
			t.Errorf("expected empty span id, got %q", got)
		}
	})

	t.Run("populated inside a span", func(t *testing.T) {
		setupRecordingTracer(t)

		ctx, span := StartSpan(context.Background(), "test")
		defer span.End()

		if got := TraceID(ctx); len(got) != 32 {
			t.Errorf("expected 32 hex char trace id, got %q", got)
		}
		if got := SpanID(ctx); len(got) != 16 {
			t.Errorf("expected 16 hex char span id, got %q", got)
		}
	})
}
