// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tallyhq/tally/internal/models"
)

// Store defines the interface for account, room and line-item storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Lookups that can miss (FindAccountByName, FindRoomByKey) return (nil, nil)
// when the record is absent; an error is reserved for storage failures.
type Store interface {
	// FindAccountByName retrieves an account by its name, including the
	// keys of the rooms it participates in.
	FindAccountByName(ctx context.Context, name string) (*models.Account, error)

	// CreateAccount persists a new account. Fails if the name is taken.
	CreateAccount(ctx context.Context, account *models.Account) error

	// UpdateAccountPassword replaces the stored credential for the named
	// account. Returns an error if the account does not exist.
	UpdateAccountPassword(ctx context.Context, name, password string) error

	// FindRoomByKey retrieves a room by its canonical key.
	FindRoomByKey(ctx context.Context, key string) (*models.Room, error)

	// GetOrCreateRoom fetches the room with the given key, creating it if
	// absent. When member is non-empty it is recorded in the room's member
	// list (idempotently). Safe to call concurrently for the same key.
	GetOrCreateRoom(ctx context.Context, key, member string) (*models.Room, error)

	// AppendLineItem persists a new line item at the end of its room's
	// item list. The item.ID field will be populated by the store.
	// The append is atomic per room: concurrent appends to the same room
	// all land, in some order, with none lost.
	AppendLineItem(ctx context.Context, item *models.LineItem) error

	// DeleteLineItem removes a line item by ID. Returns false when no
	// item with that ID exists.
	DeleteLineItem(ctx context.Context, id string) (bool, error)

	// ListLineItems returns the room's items in insertion order.
	ListLineItems(ctx context.Context, roomKey string) ([]models.LineItem, error)

	// Close releases any resources held by the store.
	Close() error
}
