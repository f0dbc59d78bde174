// Package service implements the authentication core: credential
// verification, session issuance and resolution, and the one-time bootstrap
// of the initial admin account.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msfworks/showcase/internal/auth"
	"github.com/msfworks/showcase/internal/model"
	"github.com/msfworks/showcase/internal/store"
)

// SessionCookieName is the cookie carrying the session token. It is the
// single source of truth between issuance (login) and validation; the web
// frontend depends on this exact name.
const SessionCookieName = "msf_session"

// AuthService owns login, logout, session resolution, and admin bootstrap.
// It performs no retries: every operation is attempt-once, and persistence
// failures propagate to the caller.
type AuthService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAuthService creates an AuthService backed by the given store.
func NewAuthService(st *store.Store, logger *slog.Logger) *AuthService {
	return &AuthService{store: st, logger: logger}
}

// Login verifies the credentials and, on success, mints a new session.
// An unknown username and a wrong password are indistinguishable to the
// caller: both return (nil, nil, nil). Only persistence failures return an
// error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Identity, *model.Session, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("login lookup: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, nil, nil
	}

	sess, err := s.store.CreateSession(ctx, user.ID, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return user.Identity(), sess, nil
}

// Logout deletes the session. Unknown session IDs are a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}

// Resolve returns the identity owning the session token, or nil for a
// token that is absent, malformed, or expired. The caller cannot tell
// those cases apart; session validity must not leak to the client.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*model.Identity, error) {
	if sessionID == "" {
		return nil, nil
	}
	user, err := s.store.GetUserBySession(ctx, sessionID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user.Identity(), nil
}

// EnsureBootstrapAdmin creates the reserved "admin" account exactly once.
// With no secret configured it does nothing: an admin-less system is
// preferable to one with a silent default password. The existence check is
// an optimization; the unique index on username is what actually prevents
// a concurrent double-bootstrap, so a uniqueness violation here is treated
// as success.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, secret string) error {
	_, err := s.store.GetUserByUsername(ctx, model.BootstrapUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("bootstrap existence check: %w", err)
	}

	if secret == "" {
		return nil
	}

	hash, err := auth.HashPassword(secret)
	if err != nil {
		return fmt.Errorf("bootstrap hash: %w", err)
	}

	user := &model.User{
		ID:           auth.NewToken(auth.TokenLen),
		Username:     model.BootstrapUsername,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			// Lost the race to another bootstrap; the account exists.
			return nil
		}
		return fmt.Errorf("bootstrap create: %w", err)
	}

	s.logger.Info("bootstrap admin created", "username", model.BootstrapUsername)
	return nil
}

// SweepExpired deletes expired sessions. It is best-effort: failures are
// logged and swallowed so a broken sweep never takes a request down with it.
func (s *AuthService) SweepExpired(ctx context.Context) {
	n, err := s.store.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		s.logger.Warn("session sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Debug("swept expired sessions", "deleted", n)
	}
}
