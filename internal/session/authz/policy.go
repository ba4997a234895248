package authz

import (
	"errors"

	"github.com/foliodesk/folio/internal/session/domain"
)

// RouteType is the access class of a route. It is supplied by whoever
// registers the route; the policy never infers it from the path.
type RouteType int

const (
	RoutePublic RouteType = iota
	RouteProtected
	RouteAdmin
)

func (t RouteType) String() string {
	switch t {
	case RoutePublic:
		return "public"
	case RouteProtected:
		return "protected"
	case RouteAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ErrAmbiguousRoute reports a classification that does not name exactly one
// route type. That is a configuration bug, and it fails closed.
var ErrAmbiguousRoute = errors.New("authz: route classification must name exactly one type")

// Classification is the externally-supplied route marking. Flags rather than
// an enum so that a contradictory registration (marked both public and
// admin) is representable and can be rejected instead of silently picked
// from.
type Classification struct {
	Public    bool
	Protected bool
	Admin     bool
}

// Convenience constructors for route registration.
func Public() Classification    { return Classification{Public: true} }
func Protected() Classification { return Classification{Protected: true} }
func Admin() Classification     { return Classification{Admin: true} }

// Type resolves the classification to exactly one RouteType.
func (c Classification) Type() (RouteType, error) {
	marks := 0
	var t RouteType

	if c.Public {
		marks++
		t = RoutePublic
	}
	if c.Protected {
		marks++
		t = RouteProtected
	}
	if c.Admin {
		marks++
		t = RouteAdmin
	}

	if marks != 1 {
		return 0, ErrAmbiguousRoute
	}
	return t, nil
}

// DenyReason says why access was denied.
type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyNotAuthenticated
	DenyNotAuthorized
)

func (r DenyReason) String() string {
	switch r {
	case DenyNotAuthenticated:
		return "not_authenticated"
	case DenyNotAuthorized:
		return "not_authorized"
	default:
		return "none"
	}
}

// Evaluate is the route access policy: a total function over the decision
// table. Public routes always pass; protected routes need any
// authenticated session; admin routes additionally need the admin role.
func Evaluate(route RouteType, authenticated bool, role domain.Role) (bool, DenyReason) {
	switch route {
	case RoutePublic:
		return true, DenyNone

	case RouteProtected:
		if !authenticated {
			return false, DenyNotAuthenticated
		}
		return true, DenyNone

	case RouteAdmin:
		if !authenticated {
			return false, DenyNotAuthenticated
		}
		if role != domain.RoleAdmin {
			return false, DenyNotAuthorized
		}
		return true, DenyNone

	default:
		// Unknown route types fail closed, same as ambiguous ones.
		return false, DenyNotAuthenticated
	}
}
