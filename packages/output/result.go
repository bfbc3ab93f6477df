package output

import "io"

// Result is one rendered command and what it was rendered from.
type Result struct {
	Name        string
	Source      string
	Environment string
	Command     string
	URL         string
	Tokens      []string
	Unresolved  []string
	Masked      bool
}

// Formatter displays rendered commands.
type Formatter interface {
	FormatResult(result *Result)
	FormatError(err error)
}

// Flushable is implemented by formatters that buffer results.
type Flushable interface {
	Flush() error
}

// New returns the formatter for format ("console", "plain" or "json").
// Unknown formats fall back to the console formatter.
func New(format string, w io.Writer, verbose, noColor bool) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter(JSONWithWriter(w))
	case "plain":
		return NewConsoleFormatter(WithWriter(w), WithNoColor(true))
	default:
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor))
	}
}
