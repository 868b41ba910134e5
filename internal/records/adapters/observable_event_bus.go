package adapters

import (
	"context"
	"time"

	"github.com/dejobratic/shop/internal/kafka"
	"github.com/dejobratic/shop/internal/records/domain"
	"github.com/dejobratic/shop/internal/records/ports"
	"github.com/dejobratic/shop/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableEventBus wraps an EventBus with tracing and publish metrics.
type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

var _ ports.EventBus = (*ObservableEventBus)(nil)

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishUserCreated(ctx context.Context, userID int64, name, wallet string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishUserCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("user.id", userID),
		attribute.String("event.type", "user.created"),
	)

	start := time.Now()
	err := e.bus.PublishUserCreated(ctx, userID, name, wallet)
	e.metrics.RecordPublish(ctx, "user.created", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishProductAdded(ctx context.Context, productID int64, name string, price int64) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishProductAdded")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("product.id", productID),
		attribute.String("event.type", "product.added"),
	)

	start := time.Now()
	err := e.bus.PublishProductAdded(ctx, productID, name, price)
	e.metrics.RecordPublish(ctx, "product.added", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderPlaced(ctx context.Context, orderID, userID, productID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderPlaced")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.Int64("user.id", userID),
		attribute.Int64("product.id", productID),
		attribute.String("event.type", "order.placed"),
	)

	start := time.Now()
	err := e.bus.PublishOrderPlaced(ctx, orderID, userID, productID)
	e.metrics.RecordPublish(ctx, "order.placed", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderStatusUpdated(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderStatusUpdated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.id", orderID),
		attribute.String("order.status", string(status)),
		attribute.String("event.type", "order.status_updated"),
	)

	start := time.Now()
	err := e.bus.PublishOrderStatusUpdated(ctx, orderID, status)
	e.metrics.RecordPublish(ctx, "order.status_updated", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
