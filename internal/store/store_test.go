package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msfworks/showcase/internal/auth"
	"github.com/msfworks/showcase/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", "") // in-memory
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store, username string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("test-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	u := &model.User{
		ID:           auth.NewToken(auth.TokenLen),
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "admin")

	got, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got ID %q, want %q", got.ID, u.ID)
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("got role %q, want %q", got.Role, model.RoleAdmin)
	}
	if got.PasswordHash != u.PasswordHash {
		t.Error("stored password hash does not round-trip")
	}

	got2, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got2.Username != "admin" {
		t.Errorf("got username %q, want %q", got2.Username, "admin")
	}

	count, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d users, want 1", count)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByUsername error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetUserByID(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID error = %v, want ErrNotFound", err)
	}
}

func TestUsernameCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "admin")
	if _, err := s.GetUserByUsername(ctx, "Admin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup with different case returned %v, want ErrNotFound", err)
	}
}

func TestUsernameUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "admin")
	dup := &model.User{
		ID:           auth.NewToken(auth.TokenLen),
		Username:     "admin",
		PasswordHash: "pbkdf2$100000$00$00",
		Role:         model.RoleAdmin,
	}
	err := s.CreateUser(ctx, dup)
	if err == nil {
		t.Fatal("duplicate username insert succeeded, want unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "admin")

	now := time.Now()
	sess, err := s.CreateSession(ctx, u.ID, now)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(sess.ID) != auth.TokenLen*2 {
		t.Errorf("session ID length = %d, want %d", len(sess.ID), auth.TokenLen*2)
	}
	if want := now.Add(model.SessionTTL).UnixMilli(); sess.ExpiresAt.UnixMilli() != want {
		t.Errorf("expires_at = %d, want %d", sess.ExpiresAt.UnixMilli(), want)
	}

	// Resolvable right up to the expiry instant.
	got, err := s.GetUserBySession(ctx, sess.ID, sess.ExpiresAt.Add(-time.Millisecond))
	if err != nil {
		t.Fatalf("GetUserBySession just before expiry: %v", err)
	}
	if got.ID != u.ID || got.Username != "admin" || got.Role != model.RoleAdmin {
		t.Errorf("resolved identity = %+v, want user %q", got, u.ID)
	}
	if got.PasswordHash != "" {
		t.Error("GetUserBySession leaked the password hash")
	}

	// expires_at >= now: the boundary itself is still valid.
	if _, err := s.GetUserBySession(ctx, sess.ID, sess.ExpiresAt); err != nil {
		t.Errorf("GetUserBySession at exact expiry: %v, want success", err)
	}

	// One millisecond past expiry is not.
	if _, err := s.GetUserBySession(ctx, sess.ID, sess.ExpiresAt.Add(time.Millisecond)); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserBySession past expiry = %v, want ErrNotFound", err)
	}

	// Deleted sessions stop resolving even before natural expiry.
	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetUserBySession(ctx, sess.ID, now); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserBySession after delete = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op, not an error.
	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Errorf("DeleteSession (second call): %v", err)
	}
}

func TestConcurrentSessionsCoexist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "admin")

	now := time.Now()
	a, err := s.CreateSession(ctx, u.ID, now)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	b, err := s.CreateSession(ctx, u.ID, now)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("two sessions share an ID")
	}
	for _, id := range []string{a.ID, b.ID} {
		if _, err := s.GetUserBySession(ctx, id, now); err != nil {
			t.Errorf("GetUserBySession(%q): %v", id, err)
		}
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "admin")

	base := time.Now()
	expired1, _ := s.CreateSession(ctx, u.ID, base.Add(-2*model.SessionTTL))
	expired2, _ := s.CreateSession(ctx, u.ID, base.Add(-model.SessionTTL).Add(-time.Minute))
	live, err := s.CreateSession(ctx, u.ID, base)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx, base)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d sessions, want 2", n)
	}

	for _, id := range []string{expired1.ID, expired2.ID} {
		if _, err := s.GetSession(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("expired session %q still present", id)
		}
	}
	if _, err := s.GetSession(ctx, live.ID); err != nil {
		t.Errorf("live session swept: %v", err)
	}

	// Sweeping an already-clean table deletes nothing.
	n, err = s.DeleteExpiredSessions(ctx, base)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions (second call): %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep deleted %d sessions, want 0", n)
	}
}
