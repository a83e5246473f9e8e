// Package service implements the ledger operations behind the wire protocol.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/auth"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/roomkey"
	"github.com/tallyhq/tally/internal/storage"
)

// ErrAccountNotFound is returned by operations that require an existing
// account (currently only password changes).
var ErrAccountNotFound = errors.New("account not found")

// LedgerService implements the room/account/item operations behind the
// protocol router. It owns no in-memory state; all state lives in the
// store, so methods are safe to call from concurrent connections.
type LedgerService struct {
	store    storage.Store
	verifier auth.Verifier
}

// NewLedgerService creates a new LedgerService with the given storage
// backend and credential scheme.
func NewLedgerService(store storage.Store, verifier auth.Verifier) *LedgerService {
	return &LedgerService{store: store, verifier: verifier}
}

// OpenRoom resolves the room for the given user name and date token,
// creating it if absent, and returns its key and current item list.
// The account need not exist; membership is recorded by name.
func (s *LedgerService) OpenRoom(ctx context.Context, userName, dateToken string) (string, []models.LineItem, error) {
	key := roomkey.Build(userName, dateToken)

	room, err := s.store.GetOrCreateRoom(ctx, key, userName)
	if err != nil {
		slog.Error("OpenRoom failed", "room", key, "error", err)
		return "", nil, fmt.Errorf("failed to open room: %w", err)
	}

	items, err := s.store.ListLineItems(ctx, room.Key)
	if err != nil {
		slog.Error("OpenRoom failed to list items", "room", key, "error", err)
		return "", nil, fmt.Errorf("failed to list items: %w", err)
	}

	slog.Info("Room opened", "room", room.Key, "user", userName, "items", len(items))
	return room.Key, items, nil
}

// UploadItem appends a new line item to the room for the given user name
// and date token, creating the room if absent. Returns the room key and
// the persisted item.
func (s *LedgerService) UploadItem(ctx context.Context, userName, dateToken, item, category, dollar string) (string, *models.LineItem, error) {
	key := roomkey.Build(userName, dateToken)

	room, err := s.store.GetOrCreateRoom(ctx, key, userName)
	if err != nil {
		slog.Error("UploadItem failed", "room", key, "error", err)
		return "", nil, fmt.Errorf("failed to open room: %w", err)
	}

	line := &models.LineItem{
		RoomKey:   room.Key,
		OwnerName: userName,
		Item:      item,
		Category:  category,
		Dollar:    dollar,
	}
	if err := s.store.AppendLineItem(ctx, line); err != nil {
		slog.Error("UploadItem failed to append", "room", key, "error", err)
		return "", nil, fmt.Errorf("failed to append item: %w", err)
	}

	slog.Info("Item uploaded", "room", room.Key, "user", userName, "item", item, "dollar", dollar)
	return room.Key, line, nil
}

// ChangePassword replaces the credential of an existing account.
// Returns ErrAccountNotFound when no account has the given name.
func (s *LedgerService) ChangePassword(ctx context.Context, userName, newPassword string) error {
	account, err := s.store.FindAccountByName(ctx, userName)
	if err != nil {
		slog.Error("ChangePassword lookup failed", "user", userName, "error", err)
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}

	stored, err := s.verifier.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdateAccountPassword(ctx, userName, stored); err != nil {
		slog.Error("ChangePassword update failed", "user", userName, "error", err)
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("Password changed", "user", userName)
	return nil
}

// DeleteItem removes a line item by ID. Returns false when no item with
// that ID exists.
func (s *LedgerService) DeleteItem(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.DeleteLineItem(ctx, id)
	if err != nil {
		slog.Error("DeleteItem failed", "item_id", id, "error", err)
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	slog.Info("Item delete handled", "item_id", id, "deleted", deleted)
	return deleted, nil
}

// CheckIn conflates signup and login: an unseen name creates an account
// with the given password and reports success; an existing name reports
// whether the password matches.
func (s *LedgerService) CheckIn(ctx context.Context, userName, password string) (bool, error) {
	account, err := s.store.FindAccountByName(ctx, userName)
	if err != nil {
		slog.Error("CheckIn lookup failed", "user", userName, "error", err)
		return false, fmt.Errorf("failed to find account: %w", err)
	}

	if account == nil {
		stored, err := s.verifier.Hash(password)
		if err != nil {
			return false, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.store.CreateAccount(ctx, &models.Account{Name: userName, Password: stored}); err != nil {
			slog.Error("CheckIn create failed", "user", userName, "error", err)
			return false, fmt.Errorf("failed to create account: %w", err)
		}
		slog.Info("Account created", "user", userName)
		return true, nil
	}

	ok := s.verifier.Verify(account.Password, password)
	if !ok {
		slog.Warn("CheckIn password mismatch", "user", userName)
	}
	return ok, nil
}
