package models

// LineItem represents a single ledger entry within a room.
//
// Items belong to exactly one room and exactly one account (by name) and
// are never moved between rooms. They are created on upload and never
// mutated afterwards; the only other operation is deletion by ID.
type LineItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// RoomKey is the key of the room this item was appended to.
	RoomKey string

	// OwnerName is the account name that uploaded the item. The account
	// row may not exist yet; ownership is by name, not by foreign key.
	OwnerName string

	// Item is the human-readable label (e.g., "coffee").
	Item string

	// Category is the client-chosen category label (e.g., "food").
	Category string

	// Dollar is the amount as the client sent it. Stored as text, never
	// parsed or summed by the server.
	Dollar string

	// CreatedAt is the Unix timestamp when the item was uploaded.
	CreatedAt int64
}
