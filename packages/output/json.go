package output

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Commands []JSONCommand `json:"commands"`
	Errors   []string      `json:"errors,omitempty"`
	Time     string        `json:"time"`
}

// JSONCommand represents a single rendered command
type JSONCommand struct {
	Name        string   `json:"name,omitempty"`
	File        string   `json:"file,omitempty"`
	Environment string   `json:"environment,omitempty"`
	Command     string   `json:"command"`
	URL         string   `json:"url,omitempty"`
	Args        []string `json:"args,omitempty"`
	Unresolved  []string `json:"unresolved,omitempty"`
	Masked      bool     `json:"masked,omitempty"`
}

// JSONFormatter formats rendered commands as JSON
type JSONFormatter struct {
	writer   io.Writer
	commands []JSONCommand
	errors   []string
	now      func() time.Time
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:   os.Stdout,
		commands: make([]JSONCommand, 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *Result) {
	f.commands = append(f.commands, JSONCommand{
		Name:        result.Name,
		File:        result.Source,
		Environment: result.Environment,
		Command:     result.Command,
		URL:         result.URL,
		Args:        result.Tokens,
		Unresolved:  result.Unresolved,
		Masked:      result.Masked,
	})
}

func (f *JSONFormatter) FormatError(err error) {
	f.errors = append(f.errors, err.Error())
}

// Flush writes the accumulated JSON output and resets the buffer.
func (f *JSONFormatter) Flush() error {
	output := JSONOutput{
		Commands: f.commands,
		Errors:   f.errors,
		Time:     f.now().Format(time.RFC3339),
	}
	f.commands = make([]JSONCommand, 0)
	f.errors = nil

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}
