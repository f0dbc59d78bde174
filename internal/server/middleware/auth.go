package middleware

import (
	"context"
	"net/http"

	"github.com/msfworks/showcase/internal/cookie"
	"github.com/msfworks/showcase/internal/model"
	"github.com/msfworks/showcase/internal/service"
)

type contextKeyAuth string

// identityKey is the context key for the resolved identity.
const identityKey contextKeyAuth = "identity"

// SessionAuth returns an HTTP middleware that resolves the session cookie
// to an identity and attaches it to the request context. Requests without
// a cookie, or with an invalid or expired token, pass through with no
// identity — route guards decide whether that's acceptable. Only a
// persistence failure produces an error response.
func SessionAuth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookies := cookie.Parse(r.Header.Get("Cookie"))
			sid := cookies[service.SessionCookieName]
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := authSvc.Resolve(r.Context(), sid)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "Authentication error")
				return
			}
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns an HTTP middleware that rejects requests whose
// context carries no admin identity. It must run after SessionAuth. The
// 401 body is deliberately uninformative: "no session", "expired session",
// and "never logged in" all look the same from outside.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil || identity.Role != model.RoleAdmin {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity extracts the authenticated identity from the context.
// Returns nil for unauthenticated requests.
func GetIdentity(ctx context.Context) *model.Identity {
	if id, ok := ctx.Value(identityKey).(*model.Identity); ok {
		return id
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Manually construct JSON to avoid an import cycle with the handler
	// package.
	w.Write([]byte(`{"ok":false,"error":{"message":"` + message + `"}}`))
}
