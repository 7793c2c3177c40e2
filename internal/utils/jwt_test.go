package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("zerovault", 42, time.Hour, "secret")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(42), token.AccountID)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		signKey  string
	}{
		{name: "empty issuer", issuer: "", duration: time.Hour, signKey: "secret"},
		{name: "zero duration", issuer: "zerovault", duration: 0, signKey: "secret"},
		{name: "empty sign key", issuer: "zerovault", duration: time.Hour, signKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issued, err := GenerateJWTToken("zerovault", 7, time.Hour, "secret")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, "secret", "zerovault")
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.AccountID)
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	issued, err := GenerateJWTToken("zerovault", 7, time.Hour, "secret")
	require.NoError(t, err)

	expired, err := GenerateJWTToken("zerovault", 7, -time.Minute, "secret")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		signKey string
		issuer  string
	}{
		{name: "wrong key", token: issued.SignedString, signKey: "other", issuer: "zerovault"},
		{name: "wrong issuer", token: issued.SignedString, signKey: "secret", issuer: "other"},
		{name: "expired", token: expired.SignedString, signKey: "secret", issuer: "zerovault"},
		{name: "garbage", token: "garbage", signKey: "secret", issuer: "zerovault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.signKey, tt.issuer)
			assert.Error(t, err)
		})
	}
}
