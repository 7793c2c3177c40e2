// Package utils provides general-purpose helpers used across the
// application: type-safe context keys, JSON response writing, and JWT token
// generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that may
// store string-keyed values in the same context.
type contextKey string

// String returns the string representation of the context key. Implements
// the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key under which the authentication middleware stores
// the acting account's identity in the request context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, int64(42))
var AccountIDCtxKey = contextKey("accountID")

// GetAccountIDFromContext retrieves the acting account identity from the
// context.
//
// Returns the account ID and an ok flag:
//   - ok == true  — value is present and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}
