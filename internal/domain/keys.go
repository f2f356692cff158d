package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, id, email, role string) context.Context {
	ctx = context.WithValue(ctx, KeyUserID, id)
	ctx = context.WithValue(ctx, KeyUserEmail, email)
	return context.WithValue(ctx, KeyUserRole, role)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(KeyUserID).(string)
	return id, ok && id != ""
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(KeyUserRole).(string)
	return role
}
