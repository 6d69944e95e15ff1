package middleware

import "context"

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserAdmin contextKey = "admin"
)

func UserIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(int64)
	return v, ok
}

func IsAdminFromContext(ctx context.Context) bool {
	v, ok := ctx.Value(ContextKeyUserAdmin).(bool)
	return ok && v
}
