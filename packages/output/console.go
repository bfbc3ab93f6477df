package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatResult prints the command on its own so the output can be piped
// into a shell. Verbose mode adds a summary before it.
func (f *ConsoleFormatter) FormatResult(result *Result) {
	if !f.verbose {
		fmt.Fprintln(f.writer, result.Command)
		return
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	title := result.Name
	if title == "" {
		title = result.Source
	}
	fmt.Fprintf(f.writer, "\n%s\n", bold("Request: "+title))
	if result.Source != "" && result.Source != title {
		fmt.Fprintf(f.writer, "  File:        %s\n", result.Source)
	}
	if result.Environment != "" {
		fmt.Fprintf(f.writer, "  Environment: %s\n", cyan(result.Environment))
	}
	if result.URL != "" {
		fmt.Fprintf(f.writer, "  URL:         %s\n", result.URL)
	}
	if result.Masked {
		fmt.Fprintf(f.writer, "  Secrets:     %s\n", "masked")
	}
	if len(result.Unresolved) > 0 {
		fmt.Fprintf(f.writer, "  %s %s\n", yellow("Unresolved:"), strings.Join(result.Unresolved, ", "))
	}
	fmt.Fprintf(f.writer, "\n%s\n\n", result.Command)
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("curlspec"), version)
}

// FormatSuccess prints a one-line confirmation.
func (f *ConsoleFormatter) FormatSuccess(msg string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", green("✓"), msg)
}
