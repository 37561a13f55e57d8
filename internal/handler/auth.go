package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/auth"
	"github.com/aminah/showtrack/internal/service"
)

// stateCookie holds the OAuth CSRF nonce between the redirect to Google
// and the callback. Five minutes outlives any real consent screen.
const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 5 * time.Minute
)

// AuthHandler exposes the sign-in surface: Google OAuth, local
// email/password login, logout, and the current-session probe.
type AuthHandler struct {
	auth     *service.AuthService
	google   *auth.GoogleProvider
	secure   bool   // Secure flag on cookies; false only for local HTTP dev
	redirect string // where the browser lands after a completed OAuth flow
}

// NewAuthHandler creates an AuthHandler. redirect is the frontend URL to
// send the browser to after the callback (e.g. "/").
func NewAuthHandler(authService *service.AuthService, google *auth.GoogleProvider, secure bool, redirect string) *AuthHandler {
	if redirect == "" {
		redirect = "/"
	}
	return &AuthHandler{auth: authService, google: google, secure: secure, redirect: redirect}
}

// GoogleLogin handles GET /auth/google/login: mint a state nonce, stash it
// in a short-lived cookie, and bounce the browser to Google's consent page.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	// xid gives a unique, unguessable-enough nonce without extra machinery.
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /auth/google/callback.
//
// The state parameter must equal the nonce we set on the way out — that
// proves the callback completes a flow this server started, not one an
// attacker crafted (login CSRF).
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, apperror.Forbidden("OAuth state mismatch"))
		return
	}
	// One-shot nonce: expire it whether the exchange succeeds or not.
	http.SetCookie(w, &http.Cookie{
		Name: stateCookie, Value: "", Path: "/auth", MaxAge: -1,
		HttpOnly: true, Secure: h.secure, SameSite: http.SameSiteLaxMode,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.Invalid("code", "authorization code is missing"))
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		writeError(w, apperror.Forbidden("could not verify Google sign-in"))
		return
	}

	result, err := h.auth.LoginOrRegisterGoogle(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	http.Redirect(w, r, h.redirect, http.StatusTemporaryRedirect)
}

// Login handles POST /auth/login for local email/password accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperror.Invalid("body", "request body is not valid JSON"))
		return
	}

	result, err := h.auth.LoginLocal(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, result.User)
}

// Logout handles POST /auth/logout by expiring the session cookie.
// The JWT itself stays valid until its TTL runs out; without a server-side
// revocation list, dropping the cookie is the logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name: auth.TokenCookie, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, Secure: h.secure, SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/me: who does the session cookie say I am?
// Runs behind RequireAuth, so the context always has a user id.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Forbidden("not signed in"))
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
