// Package session provides the bearer-credential component that binds a
// request to an account identity.
//
// The Manager interface is an explicit, injected dependency of the transport
// layer, never ambient global state, so the stateless JWT implementation and
// the in-memory table can be swapped without touching callers.
package session

import (
	"context"
	"errors"
)

//go:generate mockgen -source=manager.go -destination=../mock/session_manager_mock.go -package=mock

// ErrInvalidSession is returned by Validate for any token that is absent,
// malformed, expired, unknown, or carries a bad signature. Callers map it to
// Unauthorized; the reason is deliberately not distinguished.
var ErrInvalidSession = errors.New("session token is expired or invalid")

// Manager issues and validates bearer credentials.
//
// Implementations must be safe for concurrent use: validation happens on
// every authenticated request while issuance is comparatively rare.
type Manager interface {
	// Issue creates a new bearer credential bound to the given account.
	Issue(ctx context.Context, accountID int64) (string, error)

	// Validate checks a raw bearer token and returns the bound account ID,
	// or ErrInvalidSession.
	Validate(ctx context.Context, token string) (int64, error)

	// Revoke invalidates a previously issued credential. Stateless
	// implementations cannot revoke and report ErrRevokeUnsupported.
	Revoke(ctx context.Context, token string) error
}

// ErrRevokeUnsupported is returned by Revoke on stateless implementations:
// a self-contained signed token stays valid until its expiry by design.
var ErrRevokeUnsupported = errors.New("stateless sessions cannot be revoked")
