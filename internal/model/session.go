package model

import "time"

// SessionTTL is the fixed lifetime of a login session. Validity is computed
// at read time against expires_at; nothing refreshes or extends a session.
const SessionTTL = 14 * 24 * time.Hour

// Session is a server-side login session. The ID doubles as the bearer
// token stored in the client's cookie, so it must come from a CSPRNG.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
