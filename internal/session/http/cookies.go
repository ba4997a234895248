package http

import (
	"net/http"

	"github.com/foliodesk/folio/internal/session/service"
)

// CookieFactory builds the per-request session store. Handlers receive it
// from the router so none of them hard-code cookie attributes.
type CookieFactory func(w http.ResponseWriter, r *http.Request) service.SessionStore
