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

type LoginHandler struct {
	Users    *service.Users
	Sessions *service.Sessions
	Cookies  CookieFactory
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sessionsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON")
		return
	}

	user, err := h.Users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown user and wrong password.
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials",
				"Unknown username or wrong password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to log in")
		return
	}

	sess, err := h.Sessions.Establish(ctx, h.Cookies(w, r), user.ID, user.Role)
	if err != nil {
		log.Error("session establish failed", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to establish session")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionsdk.SessionResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		ExpiresAt: sess.ExpiresAt,
	})
}
