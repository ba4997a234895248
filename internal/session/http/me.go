package http

import (
	"net/http"

	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/httpx"
	"github.com/foliodesk/folio/pkg/sessionsdk"
	"github.com/foliodesk/folio/pkg/slogx"
)

type MeHandler struct {
	Users *service.Users
}

// ServeHTTP returns the authenticated user's profile. Runs behind the guard,
// so the identity is already on the context.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "No authenticated session")
		return
	}

	user, err := h.Users.GetUserByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to load user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionsdk.UserInfoResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	})
}
