// Package cmd implements the curlspec CLI commands using Cobra.
//
// Available commands:
//   - build: Render a request file as a curl command
//   - list: Display the saved requests
//   - validate: Check request files against the request schema
//   - env: List environments or show one with secrets masked
//   - import: Convert Insomnia exports, Postman collections and OpenAPI specs
//   - history: Show or clear previously rendered commands
//   - init: Create a new curlspec project with example files
//   - version: Show curlspec version information
//
// Flags fall back to CURLSPEC_* environment variables, and the config file
// supplies defaults for directories, history and display options.
package cmd
