package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Line items reference rooms by key; owners are recorded by name without a
// foreign key, because an item may be uploaded before its account checks in.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    name TEXT PRIMARY KEY,
    password TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rooms (
    key TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS room_members (
    room_key TEXT NOT NULL,
    name TEXT NOT NULL,
    joined_at INTEGER NOT NULL,
    PRIMARY KEY (room_key, name),
    FOREIGN KEY (room_key) REFERENCES rooms(key) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS line_items (
    id TEXT PRIMARY KEY,
    room_key TEXT NOT NULL,
    owner_name TEXT NOT NULL,
    item TEXT NOT NULL,
    category TEXT NOT NULL,
    dollar TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (room_key) REFERENCES rooms(key) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_line_items_room_key ON line_items(room_key);
CREATE INDEX IF NOT EXISTS idx_room_members_name ON room_members(name);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
