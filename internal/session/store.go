// Package session implements the server-side session store that maps an
// opaque cookie token to the authenticated Principal.
package session

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a token has no live session behind it,
// either because it never existed, was destroyed on logout, or expired.
var ErrNotFound = errors.New("session: not found")

// DefaultTTL is used when a store is constructed with a non-positive TTL.
const DefaultTTL = 72 * time.Hour

// Store holds the Principal for the duration of a browser session.
// Destroy removes the server-side record so a captured token cannot be
// replayed after logout.
type Store interface {
	// Create opens a new session for the principal and returns its token.
	Create(ctx context.Context, principal models.Principal) (string, error)
	// Get resolves a token to its Principal, or ErrNotFound.
	Get(ctx context.Context, token string) (*models.Principal, error)
	// Refresh replaces the stored Principal for the token. Callers must
	// invoke it after any mutation of session-displayed fields (avatar,
	// name, email) so the displayed identity stays consistent without a
	// re-login.
	Refresh(ctx context.Context, token string, principal models.Principal) error
	// Destroy invalidates the token. Destroying an absent token is not an
	// error.
	Destroy(ctx context.Context, token string) error
}

// newToken generates an opaque session identifier. Tokens carry no claims;
// everything lives server-side.
func newToken() string {
	return uuid.NewString()
}
