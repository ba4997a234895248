package http

import (
	"net/http"

	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/httpx"
)

type LogoutHandler struct {
	Sessions *service.Sessions
	Cookies  CookieFactory
}

// ServeHTTP clears the session cookie. Idempotent: logging out while logged
// out is a 204 too.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(r.Context(), h.Cookies(w, r))
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
