// Package ctxutil carries request-scoped identity and tracing values.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	accountIDKey ctxKey = "account_id"
	roleKey      ctxKey = "role"
	requestIDKey ctxKey = "request_id"
)

// RoleAdmin is the role claim that grants access to admin endpoints.
const RoleAdmin = "admin"

// WithAccountID stores the caller's account ID. The identity collaborator
// issues tokens whose subject is the account ID.
func WithAccountID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// AccountIDFromCtx returns the caller's account ID.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func AccountIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRole stores the caller's role claim.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// RoleFromCtx returns the caller's role claim, or "" if absent.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// IsAdminCtx reports whether the authenticated caller carries the admin role.
func IsAdminCtx(ctx context.Context) bool {
	return RoleFromCtx(ctx) == RoleAdmin
}

// WithRequestID stores the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LogAttrs returns the identifiers worth attaching to a log line for ctx:
// request_id and, when authenticated, account_id.
func LogAttrs(ctx context.Context) []any {
	attrs := make([]any, 0, 4)
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if id, ok := AccountIDFromCtx(ctx); ok {
		attrs = append(attrs, "account_id", id.String())
	}
	return attrs
}
