package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/foliodesk/folio/internal/session/authz"
	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/internal/session/store"
	"github.com/foliodesk/folio/pkg/httpx"
	"github.com/foliodesk/folio/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cookieName    string
	secureCookies bool
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store    store.Store
	Sessions *service.Sessions
	Users    *service.Users
	Guard    *authz.Guard
}

func NewRouter(
	cookieName string,
	secureCookies bool,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		cookieName:    cookieName,
		secureCookies: secureCookies,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// cookies builds the per-request session store over the response/request
// pair. Every handler and middleware goes through this one constructor so
// the cookie attributes stay in a single place.
func (r *Router) cookies(w http.ResponseWriter, req *http.Request) service.SessionStore {
	return httpx.NewSessionCookie(r.cookieName, r.secureCookies, w, req)
}

// guarded wraps a handler with the route access policy. Denied requests are
// redirected; allowed ones proceed with the identity on the context.
func (r *Router) guarded(class authz.Classification) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			out := r.Guard.Authorize(req.Context(), r.cookies(w, req), class)
			if !out.Allow {
				httpx.NoCache(w)
				http.Redirect(w, req, out.Target, http.StatusSeeOther)
				return
			}

			ctx := httpx.WithIdentity(req.Context(), out.Session.UserID, out.Session.Role.String())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func (r *Router) registerAuth() {
	signupHandler := &SignupHandler{Users: r.Users, Sessions: r.Sessions, Cookies: r.cookies}
	loginHandler := &LoginHandler{Users: r.Users, Sessions: r.Sessions, Cookies: r.cookies}
	demoHandler := &DemoHandler{Users: r.Users, Sessions: r.Sessions, Cookies: r.cookies}
	refreshHandler := &RefreshHandler{Sessions: r.Sessions, Cookies: r.cookies}
	logoutHandler := &LogoutHandler{Sessions: r.Sessions, Cookies: r.cookies}
	meHandler := &MeHandler{Users: r.Users}

	// Credential endpoints get the strict limit: they are the brute-force
	// surface.
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/demo",
		httpx.Chain(demoHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Refresh is called on a timer by every open client; moderate limit.
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(meHandler,
			r.guarded(authz.Protected()),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminUsersHandler{Users: r.Users}

	r.Mux.Handle("GET /v1/admin/users",
		httpx.Chain(h,
			r.guarded(authz.Admin()),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
