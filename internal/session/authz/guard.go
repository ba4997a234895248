package authz

import (
	"context"

	"github.com/foliodesk/folio/internal/session/domain"
	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/slogx"
)

// Reason is the folded-in explanation for a redirect: it distinguishes
// "never logged in" from "tampered or expired token" from "role
// insufficient" so telemetry downstream can tell them apart.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotLoggedIn
	ReasonInvalidToken
	ReasonInvalidClaims
	ReasonSessionEnded
	ReasonRoleInsufficient
	ReasonRouteMisconfigured
)

func (r Reason) String() string {
	switch r {
	case ReasonNotLoggedIn:
		return "not_logged_in"
	case ReasonInvalidToken:
		return "invalid_token"
	case ReasonInvalidClaims:
		return "invalid_claims"
	case ReasonSessionEnded:
		return "session_ended"
	case ReasonRoleInsufficient:
		return "role_insufficient"
	case ReasonRouteMisconfigured:
		return "route_misconfigured"
	default:
		return "none"
	}
}

// Outcome is the single answer the request-interception boundary consumes:
// proceed, or redirect somewhere with a reason.
type Outcome struct {
	Allow bool

	// Reason and Target are set when Allow is false.
	Reason Reason
	Target string

	// Session is set when a valid session was decoded, whether or not
	// access was allowed.
	Session domain.Session

	// Status is the raw decode result, for logging.
	Status service.ReadStatus
}

// Guard composes session decoding with the route access policy.
type Guard struct {
	Sessions *service.Sessions

	// LoginPath is where unauthenticated requests are sent.
	LoginPath string

	// DashboardPath is where authenticated-but-unauthorized requests are
	// sent.
	DashboardPath string
}

// Authorize runs the request state machine: decode session, classify route,
// evaluate policy. It never fails — a broken route classification is itself
// a redirect-to-login outcome.
func (g *Guard) Authorize(ctx context.Context, store service.SessionStore, class Classification) Outcome {
	log := slogx.FromContext(ctx)

	read := g.Sessions.Read(ctx, store)
	authenticated := read.Status == service.ReadOK

	route, err := class.Type()
	if err != nil {
		// Fail closed: contradictory classification denies, it never
		// silently picks a type.
		log.Error("route classification invalid", "err", err)
		return Outcome{
			Reason: ReasonRouteMisconfigured,
			Target: g.LoginPath,
			Status: read.Status,
		}
	}

	allowed, deny := Evaluate(route, authenticated, read.Session.Role)
	if allowed {
		return Outcome{Allow: true, Session: read.Session, Status: read.Status}
	}

	out := Outcome{Status: read.Status, Session: read.Session}

	switch deny {
	case DenyNotAuthorized:
		out.Reason = ReasonRoleInsufficient
		out.Target = g.DashboardPath
	default:
		out.Reason = authFailureReason(read.Status)
		out.Target = g.LoginPath
	}

	log.Info("request denied",
		"route", route.String(),
		"deny", deny.String(),
		"reason", out.Reason.String(),
	)
	return out
}

// authFailureReason folds the decode status into the reported reason.
func authFailureReason(status service.ReadStatus) Reason {
	switch status {
	case service.ReadNoSession:
		return ReasonNotLoggedIn
	case service.ReadDecodeFailed:
		return ReasonInvalidToken
	case service.ReadInvalidClaims:
		return ReasonInvalidClaims
	case service.ReadTerminated:
		return ReasonSessionEnded
	default:
		return ReasonNotLoggedIn
	}
}
