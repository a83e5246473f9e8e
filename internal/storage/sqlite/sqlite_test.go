package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tally-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreAccounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("FindAccountByName returns nil for unknown name", func(t *testing.T) {
		account, err := store.FindAccountByName(ctx, "nobody")
		if err != nil {
			t.Fatalf("FindAccountByName failed: %v", err)
		}
		if account != nil {
			t.Errorf("Expected nil account, got %+v", account)
		}
	})

	t.Run("CreateAccount then FindAccountByName", func(t *testing.T) {
		err := store.CreateAccount(ctx, &models.Account{Name: "alice", Password: "secret"})
		if err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}

		account, err := store.FindAccountByName(ctx, "alice")
		if err != nil {
			t.Fatalf("FindAccountByName failed: %v", err)
		}
		if account == nil {
			t.Fatal("Expected account, got nil")
		}
		if account.Password != "secret" {
			t.Errorf("Password mismatch: got %q, want %q", account.Password, "secret")
		}
		if account.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("CreateAccount rejects duplicate name", func(t *testing.T) {
		err := store.CreateAccount(ctx, &models.Account{Name: "alice", Password: "other"})
		if err == nil {
			t.Error("Expected error for duplicate account name, got nil")
		}
	})

	t.Run("UpdateAccountPassword", func(t *testing.T) {
		if err := store.UpdateAccountPassword(ctx, "alice", "rotated"); err != nil {
			t.Fatalf("UpdateAccountPassword failed: %v", err)
		}

		account, err := store.FindAccountByName(ctx, "alice")
		if err != nil {
			t.Fatalf("FindAccountByName failed: %v", err)
		}
		if account.Password != "rotated" {
			t.Errorf("Password mismatch: got %q, want %q", account.Password, "rotated")
		}
	})

	t.Run("UpdateAccountPassword fails for unknown name", func(t *testing.T) {
		err := store.UpdateAccountPassword(ctx, "nobody", "x")
		if err == nil {
			t.Error("Expected error for unknown account, got nil")
		}
	})

	t.Run("FindAccountByName includes room back-references", func(t *testing.T) {
		if _, err := store.GetOrCreateRoom(ctx, "2024-01_alice", "alice"); err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}
		if _, err := store.GetOrCreateRoom(ctx, "2024-02_alice", "alice"); err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}

		account, err := store.FindAccountByName(ctx, "alice")
		if err != nil {
			t.Fatalf("FindAccountByName failed: %v", err)
		}
		if len(account.Rooms) != 2 {
			t.Errorf("Rooms count mismatch: got %d, want 2", len(account.Rooms))
		}
	})
}

func TestSQLiteStoreRooms(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("FindRoomByKey returns nil for unknown key", func(t *testing.T) {
		room, err := store.FindRoomByKey(ctx, "nowhere")
		if err != nil {
			t.Fatalf("FindRoomByKey failed: %v", err)
		}
		if room != nil {
			t.Errorf("Expected nil room, got %+v", room)
		}
	})

	t.Run("GetOrCreateRoom creates on first reference", func(t *testing.T) {
		room, err := store.GetOrCreateRoom(ctx, "2024-01_alice", "alice")
		if err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}
		if room.Key != "2024-01_alice" {
			t.Errorf("Key mismatch: got %q", room.Key)
		}
		if room.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if len(room.Members) != 1 || room.Members[0] != "alice" {
			t.Errorf("Members mismatch: got %v, want [alice]", room.Members)
		}
	})

	t.Run("GetOrCreateRoom is idempotent", func(t *testing.T) {
		first, err := store.GetOrCreateRoom(ctx, "2024-01_alice", "alice")
		if err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}
		second, err := store.GetOrCreateRoom(ctx, "2024-01_alice", "bob")
		if err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}
		if first.CreatedAt != second.CreatedAt {
			t.Error("Expected the same room on repeat fetch-or-create")
		}
		if len(second.Members) != 2 {
			t.Errorf("Members count mismatch: got %d, want 2", len(second.Members))
		}
	})

	t.Run("GetOrCreateRoom with empty member records no membership", func(t *testing.T) {
		room, err := store.GetOrCreateRoom(ctx, "lonely", "")
		if err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}
		if len(room.Members) != 0 {
			t.Errorf("Expected no members, got %v", room.Members)
		}
	})
}

func TestSQLiteStoreLineItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetOrCreateRoom(ctx, "2024-01_alice", "alice"); err != nil {
		t.Fatalf("GetOrCreateRoom failed: %v", err)
	}

	t.Run("AppendLineItem generates ID and preserves order", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			item := &models.LineItem{
				RoomKey:   "2024-01_alice",
				OwnerName: "alice",
				Item:      fmt.Sprintf("item-%d", i),
				Category:  "food",
				Dollar:    "4.50",
			}
			if err := store.AppendLineItem(ctx, item); err != nil {
				t.Fatalf("AppendLineItem failed: %v", err)
			}
			if item.ID == "" {
				t.Error("Expected item ID to be generated")
			}
		}

		items, err := store.ListLineItems(ctx, "2024-01_alice")
		if err != nil {
			t.Fatalf("ListLineItems failed: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("Items count mismatch: got %d, want 3", len(items))
		}
		for i, item := range items {
			if item.Item != fmt.Sprintf("item-%d", i) {
				t.Errorf("Item %d out of order: got %q", i, item.Item)
			}
		}
	})

	t.Run("ListLineItems scoped to room", func(t *testing.T) {
		if _, err := store.GetOrCreateRoom(ctx, "2024-01_bob", "bob"); err != nil {
			t.Fatalf("GetOrCreateRoom failed: %v", err)
		}
		items, err := store.ListLineItems(ctx, "2024-01_bob")
		if err != nil {
			t.Fatalf("ListLineItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("Expected empty list for other room, got %d items", len(items))
		}
	})

	t.Run("DeleteLineItem removes existing item", func(t *testing.T) {
		items, err := store.ListLineItems(ctx, "2024-01_alice")
		if err != nil {
			t.Fatalf("ListLineItems failed: %v", err)
		}

		deleted, err := store.DeleteLineItem(ctx, items[0].ID)
		if err != nil {
			t.Fatalf("DeleteLineItem failed: %v", err)
		}
		if !deleted {
			t.Error("Expected deleted=true for existing item")
		}

		remaining, err := store.ListLineItems(ctx, "2024-01_alice")
		if err != nil {
			t.Fatalf("ListLineItems failed: %v", err)
		}
		if len(remaining) != len(items)-1 {
			t.Errorf("Items count mismatch after delete: got %d, want %d", len(remaining), len(items)-1)
		}
	})

	t.Run("DeleteLineItem returns false for unknown ID", func(t *testing.T) {
		before, err := store.ListLineItems(ctx, "2024-01_alice")
		if err != nil {
			t.Fatalf("ListLineItems failed: %v", err)
		}

		deleted, err := store.DeleteLineItem(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("DeleteLineItem failed: %v", err)
		}
		if deleted {
			t.Error("Expected deleted=false for unknown item")
		}

		after, err := store.ListLineItems(ctx, "2024-01_alice")
		if err != nil {
			t.Fatalf("ListLineItems failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("Delete of unknown ID changed item count: %d -> %d", len(before), len(after))
		}
	})
}

// TestConcurrentAppendsNoLostUpdates is the lost-update regression test:
// N overlapping appends to the same room must all land.
func TestConcurrentAppendsNoLostUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const n = 32

	if _, err := store.GetOrCreateRoom(ctx, "2024-01_alice", "alice"); err != nil {
		t.Fatalf("GetOrCreateRoom failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item := &models.LineItem{
				RoomKey:   "2024-01_alice",
				OwnerName: "alice",
				Item:      fmt.Sprintf("concurrent-%d", i),
				Category:  "food",
				Dollar:    "1.00",
			}
			if err := store.AppendLineItem(ctx, item); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("AppendLineItem failed: %v", err)
	}

	items, err := store.ListLineItems(ctx, "2024-01_alice")
	if err != nil {
		t.Fatalf("ListLineItems failed: %v", err)
	}
	if len(items) != n {
		t.Errorf("Lost update: got %d items, want %d", len(items), n)
	}
}
