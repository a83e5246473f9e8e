package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

// FindRoomByKey retrieves a room by its canonical key.
func (s *SQLiteStore) FindRoomByKey(ctx context.Context, key string) (*models.Room, error) {
	room := &models.Room{}
	err := s.db.QueryRowContext(ctx,
		"SELECT key, created_at FROM rooms WHERE key = ?",
		key,
	).Scan(&room.Key, &room.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Room not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by key: %w", err)
	}

	members, err := s.listMembers(ctx, key)
	if err != nil {
		return nil, err
	}
	room.Members = members

	return room, nil
}

// GetOrCreateRoom fetches the room with the given key, creating it if absent.
// When member is non-empty it is added to the room's member list; re-adding
// an existing member is a no-op.
func (s *SQLiteStore) GetOrCreateRoom(ctx context.Context, key, member string) (*models.Room, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (key, created_at) VALUES (?, ?) ON CONFLICT(key) DO NOTHING",
		key, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert room: %w", err)
	}

	if member != "" {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO room_members (room_key, name, joined_at) VALUES (?, ?, ?) ON CONFLICT(room_key, name) DO NOTHING",
			key, member, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert room member: %w", err)
		}
	}

	room := &models.Room{}
	err = tx.QueryRowContext(ctx,
		"SELECT key, created_at FROM rooms WHERE key = ?",
		key,
	).Scan(&room.Key, &room.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	members, err := s.listMembers(ctx, key)
	if err != nil {
		return nil, err
	}
	room.Members = members

	return room, nil
}

// listMembers returns a room's member names in join order.
func (s *SQLiteStore) listMembers(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM room_members WHERE room_key = ? ORDER BY joined_at, name",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan room member: %w", err)
		}
		members = append(members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room members: %w", err)
	}

	return members, nil
}
