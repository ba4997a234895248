package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/httpx"
	"github.com/foliodesk/folio/pkg/sessionsdk"
	"github.com/foliodesk/folio/pkg/slogx"
)

type SignupHandler struct {
	Users    *service.Users
	Sessions *service.Sessions
	Cookies  CookieFactory
}

// ServeHTTP creates an account and establishes a session in one step: the
// response carries both the profile body and the session cookie.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sessionsdk.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON")
		return
	}

	user, err := h.Users.Signup(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"Username must be 3-32 characters of letters, digits, underscore or hyphen")
		case errors.Is(err, service.ErrInvalidPassword):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"Password must be between 8 and 128 characters")
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteError(w, http.StatusConflict, "username_taken", "Username is already taken")
		default:
			log.Error("signup failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create account")
		}
		return
	}

	sess, err := h.Sessions.Establish(ctx, h.Cookies(w, r), user.ID, user.Role)
	if err != nil {
		log.Error("session establish failed", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to establish session")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sessionsdk.SessionResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		ExpiresAt: sess.ExpiresAt,
	})
}
