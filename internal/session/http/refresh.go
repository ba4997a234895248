package http

import (
	"net/http"
	"time"

	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/httpx"
	"github.com/foliodesk/folio/pkg/sessionsdk"
)

type RefreshHandler struct {
	Sessions *service.Sessions
	Cookies  CookieFactory
}

// ServeHTTP rotates the caller's session if it is close to expiry. The
// response is always 200 with a reason; a missing or dead session is a
// reportable outcome here, not an error, because the caller is a background
// timer that must never see a failure it can act on.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := h.Sessions.Rotate(r.Context(), h.Cookies(w, r))

	body := sessionsdk.RefreshResponse{
		Refreshed: result.Refreshed,
		Reason:    result.Reason.Wire(),
		UserID:    result.UserID,
		Role:      result.Role.String(),
	}

	switch result.Reason {
	case service.RotateRotated, service.RotateNotNeeded:
		body.TimeLeftSec = int64(result.TimeLeft / time.Second)
	case service.RotateAbsoluteLimit:
		body.AgeSec = int64(result.Age / time.Second)
		body.MaxSec = int64(result.Max / time.Second)
	}

	httpx.WriteJSON(w, http.StatusOK, body)
}
