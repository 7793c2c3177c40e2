// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.SessionBackend {
	case SessionBackendJWT:
		if cfg.App.TokenSignKey == "" {
			return fmt.Errorf("%w: jwt session backend requires a token sign key", ErrInvalidAppConfigs)
		}
	case SessionBackendMemory:
		if cfg.App.SessionTTL <= 0 {
			return fmt.Errorf("%w: memory session backend requires a positive session ttl", ErrInvalidAppConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidAppConfigs, cfg.App.SessionBackend)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("%w: empty server address", ErrInvalidClientConfigs)
	}

	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidClientConfigs)
	}

	return nil
}
