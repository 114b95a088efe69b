package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"commercegen/internal/models"
	"commercegen/internal/store"
)

// StoreWriter is the direct-persistence sink: instead of a message
// bus, events land in the warehouse's fact tables.
type StoreWriter struct {
	store *store.Store
}

func NewStoreWriter(s *store.Store) *StoreWriter {
	return &StoreWriter{store: s}
}

// Publish decodes the flat payload for the stream's event kind and
// writes the corresponding fact rows.
func (w *StoreWriter) Publish(ctx context.Context, stream string, payload []byte) error {
	switch stream {
	case models.StreamOrders:
		var ev models.OrderEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("failed to decode order event: %w", err)
		}
		return w.store.WriteOrderEvent(ctx, &ev)

	case models.StreamStock:
		var ev models.StockEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("failed to decode stock event: %w", err)
		}
		return w.store.WriteStockEvent(ctx, &ev)

	case models.StreamClickstream:
		var ev models.ClickstreamEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("failed to decode clickstream event: %w", err)
		}
		return w.store.WriteClickstreamEvent(ctx, &ev)

	default:
		return fmt.Errorf("unknown stream %q", stream)
	}
}
