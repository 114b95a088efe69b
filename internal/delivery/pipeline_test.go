package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"commercegen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	published map[string][][]byte
	err       error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{published: map[string][][]byte{}}
}

func (s *recordingSink) Publish(_ context.Context, stream string, payload []byte) error {
	if s.err != nil {
		return s.err
	}
	s.published[stream] = append(s.published[stream], payload)
	return nil
}

func testEvent() *models.StockEvent {
	return &models.StockEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeStock,
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		ListingSK: 42,
		Stock:     17,
		Source:    "generator",
	}
}

func TestDeliverSuccess(t *testing.T) {
	sink := newRecordingSink()
	p := NewPipeline(sink)

	result := p.Deliver(context.Background(), models.StreamStock, testEvent())

	assert.True(t, result.Delivered)
	assert.NoError(t, result.Err)
	assert.Equal(t, models.StreamStock, result.Stream)
	assert.Equal(t, "evt-1", result.EventID)

	require.Len(t, sink.published[models.StreamStock], 1)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(sink.published[models.StreamStock][0], &decoded))
	assert.Equal(t, "evt-1", decoded["event_id"])
	assert.Equal(t, "stock", decoded["event_type"])
	assert.Equal(t, float64(42), decoded["seller_product_sk"])
	assert.Equal(t, float64(17), decoded["stock"])
	assert.Equal(t, "generator", decoded["source"])
}

func TestDeliverSinkFailureIsSwallowed(t *testing.T) {
	sink := newRecordingSink()
	sink.err = fmt.Errorf("broker unavailable")
	p := NewPipeline(sink)

	// The failure surfaces only in the result; the event is dropped
	// and nothing panics or propagates.
	result := p.Deliver(context.Background(), models.StreamStock, testEvent())

	assert.False(t, result.Delivered)
	assert.ErrorContains(t, result.Err, "broker unavailable")
	assert.Empty(t, sink.published)
}

func TestDeliverEachStreamIndependently(t *testing.T) {
	sink := newRecordingSink()
	p := NewPipeline(sink)

	for i := 0; i < 3; i++ {
		p.Deliver(context.Background(), models.StreamOrders, testEvent())
	}
	p.Deliver(context.Background(), models.StreamClickstream, testEvent())

	assert.Len(t, sink.published[models.StreamOrders], 3)
	assert.Len(t, sink.published[models.StreamClickstream], 1)
}
