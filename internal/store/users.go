package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msfworks/showcase/internal/model"
)

// userRow maps 1:1 to the users table. Timestamps are epoch milliseconds
// in the database; conversion to time.Time happens at this boundary.
type userRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CreatedAt    int64  `db:"created_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         model.Role(r.Role),
		CreatedAt:    time.UnixMilli(r.CreatedAt),
	}
}

// CreateUser inserts a new user. The username's uniqueness is enforced by
// the schema; a violation surfaces as an error satisfying IsUniqueViolation.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	q := s.rebind(`INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByUsername returns the user with the given username, or ErrNotFound.
// The lookup is case-sensitive; usernames are stored exactly as created.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var row userRow
	q := s.rebind(`SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`)
	if err := s.db.GetContext(ctx, &row, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return row.toModel(), nil
}

// GetUserByID returns the user with the given ID, or ErrNotFound.
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var row userRow
	q := s.rebind(`SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return row.toModel(), nil
}

// ListUsers returns all users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, username, password_hash, role, created_at FROM users ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]model.User, len(rows))
	for i, r := range rows {
		users[i] = *r.toModel()
	}
	return users, nil
}

// CountUsers returns the total number of user records.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
