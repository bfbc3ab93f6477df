// Package output provides formatters for displaying rendered commands.
//
// Supported output formats:
//   - Console: the command, with colored details in verbose mode
//   - JSON: machine-readable JSON output
//
// Each formatter implements the Formatter interface and can optionally
// implement Flushable for formats that accumulate results before output.
package output
