package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msfworks/showcase/internal/auth"
	"github.com/msfworks/showcase/internal/model"
)

type sessionRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	CreatedAt int64  `db:"created_at"`
	ExpiresAt int64  `db:"expires_at"`
}

func (r sessionRow) toModel() *model.Session {
	return &model.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		CreatedAt: time.UnixMilli(r.CreatedAt),
		ExpiresAt: time.UnixMilli(r.ExpiresAt),
	}
}

// CreateSession mints a fresh random session token for the user and persists
// it with a fixed TTL. The token's 128 bits of entropy make collisions
// negligible; the primary key on sessions.id backs that up.
func (s *Store) CreateSession(ctx context.Context, userID string, now time.Time) (*model.Session, error) {
	sess := &model.Session{
		ID:        auth.NewToken(auth.TokenLen),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(model.SessionTTL),
	}

	q := s.rebind(`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q, sess.ID, sess.UserID, sess.CreatedAt.UnixMilli(), sess.ExpiresAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetSession returns the session with the given ID regardless of expiry,
// or ErrNotFound.
func (s *Store) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var row sessionRow
	q := s.rebind(`SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return row.toModel(), nil
}

// DeleteSession removes a session. Deleting a session that doesn't exist is
// not an error, so logout is idempotent.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	q := s.rebind(`DELETE FROM sessions WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session whose expiry is strictly
// before now and returns the number of rows deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	q := s.rebind(`DELETE FROM sessions WHERE expires_at < ?`)
	res, err := s.db.ExecContext(ctx, q, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// GetUserBySession resolves a session token to its owning user, enforcing
// expiry at read time. An absent or expired session is ErrNotFound either
// way; callers cannot tell the two apart, and that is deliberate. The
// password hash is not selected.
func (s *Store) GetUserBySession(ctx context.Context, sessionID string, now time.Time) (*model.User, error) {
	var row struct {
		ID        string `db:"id"`
		Username  string `db:"username"`
		Role      string `db:"role"`
		CreatedAt int64  `db:"created_at"`
	}
	q := s.rebind(`SELECT u.id, u.username, u.role, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ? AND s.expires_at >= ?`)
	if err := s.db.GetContext(ctx, &row, q, sessionID, now.UnixMilli()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by session: %w", err)
	}
	return &model.User{
		ID:        row.ID,
		Username:  row.Username,
		Role:      model.Role(row.Role),
		CreatedAt: time.UnixMilli(row.CreatedAt),
	}, nil
}

// CountSessions returns the total number of session records, expired or not.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sessions`); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}
