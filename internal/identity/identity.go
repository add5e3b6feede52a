package identity

import "context"

// User is the opaque identity handed to the core by the auth layer.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Provider answers "who is the current user, if anyone". An absent user is a
// hard precondition failure for checkout.
type Provider interface {
	CurrentUser(ctx context.Context) (*User, bool)
}

type contextKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextKey{}).(*User)
	return user, ok && user != nil
}

// ContextProvider resolves the user placed on the request context by the
// authentication middleware.
type ContextProvider struct{}

func (ContextProvider) CurrentUser(ctx context.Context) (*User, bool) {
	return FromContext(ctx)
}
