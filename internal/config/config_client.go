package config

import (
	"fmt"
	"time"
)

// ClientServer holds network settings used by the client transport layer.
type ClientServer struct {
	// Address is the HTTP endpoint address of the vault server.
	Address string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Server contains the vault server address and timeouts.
	Server ClientServer
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It merges the same sources as [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		buildRaw()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Server: ClientServer{
			Address:        cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}
