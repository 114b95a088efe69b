package store

import (
	"context"
	"fmt"

	"commercegen/internal/models"
)

// WriteOrderEvent persists an order and its items transactionally.
// Used by the direct-persistence sink; the order and its lines land
// together or not at all.
func (s *Store) WriteOrderEvent(ctx context.Context, ev *models.OrderEvent) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fact_order (event_id, order_id, customer_sk, total_amount, currency, status, event_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.EventID, ev.OrderID, ev.CustomerSK, ev.TotalAmount, ev.Currency, ev.Status, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert order fact: %w", err)
	}

	for _, item := range ev.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fact_order_item (order_id, seller_product_sk, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			ev.OrderID, item.ListingSK, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert order item fact: %w", err)
		}
	}

	return tx.Commit()
}

// WriteStockEvent persists a point-in-time stock level.
func (s *Store) WriteStockEvent(ctx context.Context, ev *models.StockEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fact_stock (event_id, seller_product_sk, stock, source, event_timestamp)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.EventID, ev.ListingSK, ev.Stock, ev.Source, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert stock fact: %w", err)
	}
	return nil
}

// WriteClickstreamEvent persists one browsing action.
func (s *Store) WriteClickstreamEvent(ctx context.Context, ev *models.ClickstreamEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fact_clickstream (event_id, session_id, user_id, url, action, user_agent, ip, event_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.EventID, ev.SessionID, ev.UserID, ev.URL, ev.Action, ev.UserAgent, ev.IP, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert clickstream fact: %w", err)
	}
	return nil
}
