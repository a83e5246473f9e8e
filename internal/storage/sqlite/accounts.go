package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

// FindAccountByName retrieves an account by name, including the keys of the
// rooms it participates in.
func (s *SQLiteStore) FindAccountByName(ctx context.Context, name string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		"SELECT name, password, created_at FROM accounts WHERE name = ?",
		name,
	).Scan(&account.Name, &account.Password, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Account not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by name: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT room_key FROM room_members WHERE name = ? ORDER BY joined_at, room_key",
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get account rooms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan room key: %w", err)
		}
		account.Rooms = append(account.Rooms, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rooms: %w", err)
	}

	return account, nil
}

// CreateAccount inserts a new account into the database.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (name, password, created_at) VALUES (?, ?, ?)",
		account.Name, account.Password, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// UpdateAccountPassword replaces the stored credential for the named account.
func (s *SQLiteStore) UpdateAccountPassword(ctx context.Context, name, password string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET password = ? WHERE name = ?",
		password, name,
	)
	if err != nil {
		return fmt.Errorf("failed to update account password: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check password update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account not found: %s", name)
	}

	return nil
}
