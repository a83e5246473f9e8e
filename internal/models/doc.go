// Package models defines the core domain models for Tally.
//
// # Models
//
//   - Account: A named participant. The name is human-chosen and acts as
//     the primary key; there is no generated user ID.
//   - Room: A shared ledger, keyed by the canonical room key derived from
//     two tokens (see the roomkey package). Holds an ordered member list
//     and an ordered list of line items.
//   - LineItem: One ledger entry (label, category, dollar amount) owned by
//     an account within a room. Items are append-only: created on upload,
//     never edited, deletable by identifier.
//
// Session state (the live-connection side of the system) is deliberately
// not a model here: it is in-memory only and owned by the ws package.
//
// # Design Principles
//
// 1. **Name-keyed identity**: accounts and rooms are addressed by their
// human-visible names, matching the wire protocol.
// 2. **Avoid circular references**: models reference each other by name/key
// strings instead of pointers.
// 3. **Amounts are opaque text**: the dollar field is stored and relayed as
// the client sent it; the server does no arithmetic on it.
package models
