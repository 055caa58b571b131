package authctx

import (
	"context"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// CurrentUser is the authenticated caller. OfficeID is nil for users
// without an office assignment.
type CurrentUser struct {
	ID       int64
	Email    string
	Role     domain.UserRole
	OfficeID *int64
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *CurrentUser {
	val, ok := ctx.Value(userContextKey).(CurrentUser)
	if !ok {
		return nil
	}
	return &val
}

// IsManagerial reports whether the caller may see office-wide data.
func (u CurrentUser) IsManagerial() bool {
	return u.Role == domain.RoleAdmin || u.Role == domain.RoleManager
}
