package resolver

import (
	"context"

	"vestibule-demo/internal/auth"
)

// Resolver determines which internal user an external identity belongs to.
// It is the ONLY place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		identity *auth.Identity,
	) (userID string, err error)

	// User returns the user record for a resolved user ID, or nil when
	// the ID is unknown.
	User(ctx context.Context, userID string) (*auth.User, error)
}
