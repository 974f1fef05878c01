// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every binary.
func (cfg *StructuredConfig) validate() error {
	if cfg.DB.DSN == "" && cfg.DB.Name == "" {
		return fmt.Errorf("%w: set DB_DATABASE_URI or DB_NAME", ErrInvalidStorageConfigs)
	}

	if cfg.Sandbox.StatementTimeout <= 0 || cfg.Sandbox.MaxRows <= 0 {
		return ErrInvalidSandboxConfigs
	}

	return nil
}

// validateServer checks settings required only by the web server.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.SecretKey == "" {
		return fmt.Errorf("%w: SECRET_KEY is required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.SessionDuration <= 0 || cfg.App.ResetTokenTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
