// Package config handles configuration loading and management for curlspec.
//
// It provides functionality for:
//   - Loading configuration from .curlspec.yaml, curlspec.yaml, .curlspec.json or .curlspecrc
//   - Default configuration values
//   - CURLSPEC_* environment overrides
package config
