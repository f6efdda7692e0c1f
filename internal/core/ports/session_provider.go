package ports

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/live"
)

// Identity is an authenticated partner session.
type Identity struct {
	PartnerID kernel.ID
	Email     string
	Token     string
	ExpiresAt time.Time
}

// SessionProvider issues and validates credentials. Failures are errs.AuthError values.
type SessionProvider interface {
	// Register creates a credential and returns the identity for the new partner.
	Register(ctx context.Context, email, password string) (Identity, error)

	// Unregister removes a credential created by Register.
	Unregister(ctx context.Context, id kernel.ID) error

	// SignIn verifies the credential and issues a session token.
	SignIn(ctx context.Context, email, password string) (Identity, error)

	// SignOut revokes every session token of the identity behind token.
	SignOut(ctx context.Context, token string) error

	// Verify resolves a session token to its identity.
	Verify(ctx context.Context, token string) (Identity, error)

	// OnIdentityChange streams the identity behind token: first the identity itself,
	// then nil once the session is signed out. The caller must Close the stream.
	OnIdentityChange(ctx context.Context, token string) (*live.Stream[*Identity], error)
}
