package models

// Room represents a shared ledger.
//
// Rooms are created lazily on the first OPEN or UPLOAD that references
// their key and are never deleted.
type Room struct {
	// Key is the canonical room key (the two tokens sorted and joined),
	// unique across all rooms.
	Key string

	// Members are the account names that have referenced this room, in
	// the order they first did so.
	Members []string

	// CreatedAt is the Unix timestamp when the room was first referenced.
	CreatedAt int64
}
