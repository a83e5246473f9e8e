package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/models"
)

// AppendLineItem persists a new line item at the end of its room's list.
// A single INSERT, so concurrent appends to the same room serialize at the
// database and none are lost.
func (s *SQLiteStore) AppendLineItem(ctx context.Context, item *models.LineItem) error {
	// Generate ID if not set
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO line_items (id, room_key, owner_name, item, category, dollar, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.RoomKey, item.OwnerName, item.Item, item.Category, item.Dollar, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert line item: %w", err)
	}

	return nil
}

// DeleteLineItem removes a line item by ID.
// Returns false when no item with that ID exists.
func (s *SQLiteStore) DeleteLineItem(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM line_items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete line item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check line item deletion: %w", err)
	}

	return affected > 0, nil
}

// ListLineItems returns the room's items in insertion order.
func (s *SQLiteStore) ListLineItems(ctx context.Context, roomKey string) ([]models.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_key, owner_name, item, category, dollar, created_at
		 FROM line_items WHERE room_key = ? ORDER BY rowid`,
		roomKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(&item.ID, &item.RoomKey, &item.OwnerName,
			&item.Item, &item.Category, &item.Dollar, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	return items, nil
}
