package models

// Account represents a named participant.
//
// The name is unique and human-chosen; it is the primary key. There is no
// separate generated identifier.
type Account struct {
	// Name is the unique account name.
	Name string

	// Password is the stored credential. Depending on the configured
	// auth scheme this is either the plaintext password or a bcrypt hash;
	// only the auth package interprets it.
	Password string

	// Rooms are the keys of the rooms this account participates in,
	// populated from room membership on lookup.
	Rooms []string

	// CreatedAt is the Unix timestamp when the account was first checked in.
	CreatedAt int64
}
