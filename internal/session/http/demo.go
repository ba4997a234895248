package http

import (
	"net/http"

	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/httpx"
	"github.com/foliodesk/folio/pkg/sessionsdk"
	"github.com/foliodesk/folio/pkg/slogx"
)

type DemoHandler struct {
	Users    *service.Users
	Sessions *service.Sessions
	Cookies  CookieFactory
}

// ServeHTTP establishes a guest session on the shared demo account. No
// request body; the account is created lazily on first use.
func (h *DemoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.Users.Demo(ctx)
	if err != nil {
		log.Error("demo account lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to start demo session")
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
