// Package config provides configuration loading, merging, and validation
// facilities for the SQL trainer binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (a field set by an earlier source is kept):
//  1. Environment variables, after an optional .env file is loaded
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig], used by the exporter,
// and [GetServerConfig], used by the web server.
package config
