package composables

import (
	"context"
	"errors"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/pkg/constants"
)

var (
	ErrNoUser    = errors.New("no authenticated user found in context")
	ErrForbidden = errors.New("forbidden")
)

// WithUser attaches the authenticated acting user to the context. Only the
// session middleware does this; request bodies naming "who I am" are never
// trusted.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

func UseUser(ctx context.Context) (user.User, error) {
	u, ok := ctx.Value(constants.UserKey).(user.User)
	if !ok {
		return user.User{}, ErrNoUser
	}
	return u, nil
}
