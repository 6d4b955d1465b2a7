package models

import "context"

type contextKey string

const userContextKey contextKey = "user"

// SetUserContext returns a copy of ctx carrying user. A nil user leaves ctx unchanged.
func SetUserContext(ctx context.Context, user *User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the user stored by SetUserContext, or nil.
func GetUserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}
