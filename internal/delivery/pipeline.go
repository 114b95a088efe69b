// Package delivery hands constructed events to a pluggable sink.
// Delivery is best effort: one attempt per event, failures are logged
// and the event is dropped so the owning stream's cadence is never
// disturbed.
package delivery

import (
	"context"
	"encoding/json"
	"time"

	"commercegen/internal/models"
	"commercegen/internal/util"

	"go.uber.org/zap"
)

// Sink is the external system that receives emitted events. The
// pipeline assumes nothing beyond "delivered or rejected".
type Sink interface {
	Publish(ctx context.Context, stream string, payload []byte) error
}

// Result reports a single delivery attempt. It exists for
// observability; callers discard failed events rather than retrying.
type Result struct {
	Stream    string
	EventID   string
	Delivered bool
	Err       error
}

// Pipeline serializes events and publishes them through a Sink.
type Pipeline struct {
	sink   Sink
	logger *zap.Logger
}

func NewPipeline(sink Sink) *Pipeline {
	return &Pipeline{sink: sink, logger: util.GetLogger()}
}

// Deliver publishes one event to the named stream. Sink errors are
// logged with the event id and swallowed into the Result; they never
// propagate as faults.
func (p *Pipeline) Deliver(ctx context.Context, stream string, event models.Event) Result {
	ctx, span := util.StartSpan(ctx, "Pipeline.Deliver")
	defer span.End()

	result := Result{Stream: stream, EventID: event.ID()}

	payload, err := json.Marshal(event)
	if err != nil {
		util.EventsDroppedTotal.WithLabelValues(stream, "marshal").Inc()
		p.logger.Error("Failed to marshal event",
			zap.String("stream", stream),
			zap.String("event_id", event.ID()),
			zap.Error(err))
		result.Err = err
		return result
	}

	start := time.Now()
	err = p.sink.Publish(ctx, stream, payload)
	util.DeliveryLatency.WithLabelValues(stream).Observe(time.Since(start).Seconds())

	if err != nil {
		util.EventsDroppedTotal.WithLabelValues(stream, "sink").Inc()
		p.logger.Warn("Delivery failed, dropping event",
			zap.String("stream", stream),
			zap.String("event_id", event.ID()),
			zap.Error(err))
		result.Err = err
		return result
	}

	util.EventsDeliveredTotal.WithLabelValues(stream).Inc()
	p.logger.Debug("Event delivered",
		zap.String("stream", stream),
		zap.String("event_id", event.ID()))
	result.Delivered = true
	return result
}
