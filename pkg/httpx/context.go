package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated subject ID.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyRole carries the authenticated role name.
	CtxKeyRole ctxKey = "role"
)

// WithIdentity attaches the authenticated identity to the context for
// downstream handlers.
func WithIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	return context.WithValue(ctx, CtxKeyRole, role)
}

// UserIDFromContext returns the authenticated subject ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// RoleFromContext returns the authenticated role, if any.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(CtxKeyRole).(string)
	return role, ok && role != ""
}
