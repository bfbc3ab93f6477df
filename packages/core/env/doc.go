// Package env resolves {{variable}} placeholders for curlspec.
//
// It provides functionality for:
//   - Substituting {{name}} and {{name:default}} placeholders
//   - Reporting placeholders that could not be resolved
//   - Loading .env files and prefixed OS environment variables
//   - Layering variable sources by precedence
package env
