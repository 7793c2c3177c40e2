package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token with convenience accessors.
//
// It embeds [jwt.Token] for low-level operations and
// [jwt.RegisteredClaims] for standard claim access. SignedString holds the
// compact serialized form ready for the Authorization header; AccountID is a
// cached, parsed copy of the "sub" claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard RFC 7519 claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string `json:"-"`

	// AccountID is the owner identity extracted from the "sub" claim.
	AccountID int64 `json:"-"`
}

// GetAccountID extracts the account identity from the "sub" claim and parses
// it as a base-10 int64.
func (t *Token) GetAccountID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting account ID from token: %w", err)
	}

	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting account ID from token to int64: %w", err)
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token. It implements
// [fmt.Stringer].
func (t *Token) String() string {
	return t.SignedString
}
