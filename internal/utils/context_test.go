package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAccountIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, int64(42))

	accountID, ok := GetAccountIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), accountID)
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	_, ok := GetAccountIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetAccountIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, "42")

	_, ok := GetAccountIDFromContext(ctx)
	assert.False(t, ok)
}
