package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [StructuredConfig.validateServer] when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates that neither a DSN nor a database
	// name was provided.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing secret key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidSandboxConfigs indicates a non-positive sandbox limit.
	ErrInvalidSandboxConfigs = errors.New("invalid sandbox configuration")
)
