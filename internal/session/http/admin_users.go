package http

import (
	"net/http"

	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/httpx"
	"github.com/foliodesk/folio/pkg/sessionsdk"
	"github.com/foliodesk/folio/pkg/slogx"
)

type AdminUsersHandler struct {
	Users *service.Users
}

// ServeHTTP lists every account. Admin-only; the guard enforces the role
// before this runs.
func (h *AdminUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.Users.ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list users")
		return
	}

	out := sessionsdk.UsersResponse{Users: make([]sessionsdk.UserInfoResponse, 0, len(users))}
	for _, user := range users {
		out.Users = append(out.Users, sessionsdk.UserInfoResponse{
			UserID:    user.ID,
			Username:  user.Username,
			Role:      user.Role.String(),
			CreatedAt: user.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
