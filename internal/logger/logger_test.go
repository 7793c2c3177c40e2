package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ReturnsUsableLogger(t *testing.T) {
	log := NewLogger("test")
	require.NotNil(t, log)

	// Must not panic on basic use.
	log.Debug().Str("k", "v").Msg("debug message")
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	log.Error().Msg("should go nowhere")
}

func TestGetChildLogger_InheritsParent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

func TestFromContext_WithoutAttachedLogger(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	log.Info().Msg("falls back to global logger")
}

func TestFromRequest_WithAttachedLogger(t *testing.T) {
	base := Nop()
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(base.WithContext(req.Context()))

	log := FromRequest(req)
	require.NotNil(t, log)
	log.Info().Msg("request-scoped entry")
}
