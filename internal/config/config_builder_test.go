package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App: App{TokenSignKey: "from-env"},
		},
		&StructuredConfig{
			App:    App{TokenSignKey: "from-flags", TokenIssuer: "flags-issuer"},
			Server: Server{HTTPAddress: "localhost:9999"},
		},
	)
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.App.TokenSignKey, "first source keeps priority")
	assert.Equal(t, "flags-issuer", cfg.App.TokenIssuer, "later sources fill gaps")
	assert.Equal(t, "localhost:9999", cfg.Server.HTTPAddress)
}

func TestConfigBuilder_DefaultsFillEverythingElse(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App: App{TokenSignKey: "secret"},
	})
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, SessionBackendJWT, cfg.App.SessionBackend)
	assert.Equal(t, "zerovault", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.PruneInterval)
}

func TestConfigBuilder_PropagatesSourceError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	_, err := b.build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "jwt backend with sign key",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name: "jwt backend without sign key",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.TokenSignKey = ""
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "memory backend with ttl",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.SessionBackend = SessionBackendMemory
				cfg.App.TokenSignKey = ""
			},
		},
		{
			name: "memory backend without ttl",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.SessionBackend = SessionBackendMemory
				cfg.App.SessionTTL = 0
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "unknown backend",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.SessionBackend = "redis"
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "empty listen address",
			mutate: func(cfg *StructuredConfig) {
				cfg.Server.HTTPAddress = ""
			},
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.App.TokenSignKey = "secret"
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	valid := &ClientConfig{
		Server: ClientServer{Address: "localhost:8080", RequestTimeout: 30 * time.Second},
	}
	assert.NoError(t, valid.validate())

	noAddress := &ClientConfig{
		Server: ClientServer{RequestTimeout: 30 * time.Second},
	}
	assert.ErrorIs(t, noAddress.validate(), ErrInvalidClientConfigs)

	noTimeout := &ClientConfig{
		Server: ClientServer{Address: "localhost:8080"},
	}
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidClientConfigs)
}
