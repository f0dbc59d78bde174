package handler

import (
	"net/http"

	"github.com/msfworks/showcase/internal/cookie"
	"github.com/msfworks/showcase/internal/model"
	"github.com/msfworks/showcase/internal/server/middleware"
	"github.com/msfworks/showcase/internal/service"
)

// AuthHandler serves the login, logout, and current-identity endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionCookieOptions returns the attributes used for the session cookie.
// SameSite=None (with Secure) because the admin frontend runs on a separate
// origin and sends credentialed cross-site requests.
func sessionCookieOptions(maxAgeSeconds int) cookie.Options {
	opts := cookie.DefaultOptions()
	opts.SameSite = cookie.SameSiteNone
	opts.MaxAge = cookie.MaxAge(maxAgeSeconds)
	return opts
}

// Login authenticates the credentials and issues a session cookie.
// POST /api/v1/auth/login
//
// Every failure mode — missing fields, unknown username, wrong password —
// produces the same "Invalid credentials" message so the response can't be
// used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if !model.IsNonEmpty(req.Username, model.MaxUsernameLen) || !model.IsNonEmpty(req.Password, model.MaxPasswordLen) {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	identity, sess, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Authentication error")
		return
	}
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	w.Header().Set("Set-Cookie", cookie.Serialize(
		service.SessionCookieName,
		sess.ID,
		sessionCookieOptions(int(model.SessionTTL.Seconds())),
	))
	writeOK(w, http.StatusOK, map[string]interface{}{"user": identity})
}

// Logout deletes the presented session, if any, and clears the cookie.
// POST /api/v1/auth/logout
//
// Logout is idempotent: a request without a cookie, or with a token that
// no longer exists, still gets the clearing Set-Cookie and a 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookies := cookie.Parse(r.Header.Get("Cookie"))
	if sid := cookies[service.SessionCookieName]; sid != "" {
		if err := h.authSvc.Logout(r.Context(), sid); err != nil {
			writeError(w, http.StatusInternalServerError, "Logout error")
			return
		}
	}

	w.Header().Set("Set-Cookie", cookie.Serialize(
		service.SessionCookieName,
		"",
		sessionCookieOptions(0),
	))
	writeOK(w, http.StatusOK, map[string]interface{}{"loggedOut": true})
}

// Me returns the authenticated identity. The SessionAuth middleware has
// already resolved the cookie; this endpoint only reports the result.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"user": identity})
}
