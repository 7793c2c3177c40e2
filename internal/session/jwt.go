package session

import (
	"context"
	"fmt"
	"time"

	"github.com/zerovault/zerovault/internal/utils"
)

// JWTManager is the stateless Manager implementation: a signed, self-contained
// token encoding the account identity and an expiry, verified by signature
// without any server-side state. Tokens survive server restarts and cannot be
// revoked before expiry.
type JWTManager struct {
	signKey  string
	issuer   string
	duration time.Duration
}

// NewJWTManager constructs a JWTManager. signKey is the HMAC-SHA256 secret,
// issuer becomes the "iss" claim, and duration bounds token validity.
func NewJWTManager(signKey, issuer string, duration time.Duration) *JWTManager {
	return &JWTManager{
		signKey:  signKey,
		issuer:   issuer,
		duration: duration,
	}
}

// Issue implements [Manager].
func (m *JWTManager) Issue(_ context.Context, accountID int64) (string, error) {
	token, err := utils.GenerateJWTToken(m.issuer, accountID, m.duration, m.signKey)
	if err != nil {
		return "", fmt.Errorf("issuing session token failed: %w", err)
	}

	return token.SignedString, nil
}

// Validate implements [Manager]. Signature, issuer and expiry failures are
// all normalised to ErrInvalidSession so callers never branch on low-level
// JWT errors.
func (m *JWTManager) Validate(_ context.Context, tokenString string) (int64, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, m.signKey, m.issuer)
	if err != nil {
		return 0, ErrInvalidSession
	}

	return token.AccountID, nil
}

// Revoke implements [Manager]. A self-contained token cannot be invalidated
// server-side before its expiry.
func (m *JWTManager) Revoke(_ context.Context, _ string) error {
	return ErrRevokeUnsupported
}
