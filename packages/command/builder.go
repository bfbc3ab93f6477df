package command

import (
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/env"
	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
)

const (
	Program        = "curl"
	FlagMethod     = "-X"
	FlagHeader     = "-H"
	FlagData       = "-d"
	FlagForm       = "-F"
	FlagDataBinary = "--data-binary"
)

// lineContinuation separates parts in multi-line output.
const lineContinuation = " \\\n  "

// Part is one logical argument group: the program, a flag with its value,
// or the URL.
type Part []string

// Builder renders requests using a resolver for template strings.
type Builder struct {
	resolve func(string) string
}

// NewBuilder returns a Builder that passes every templatable string through
// resolve. A nil resolve leaves templates untouched.
func NewBuilder(resolve func(string) string) *Builder {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	return &Builder{resolve: resolve}
}

// ForVariables returns a Builder that substitutes placeholders from vars.
func ForVariables(vars model.Variables) *Builder {
	return NewBuilder(func(s string) string {
		return env.Substitute(s, vars)
	})
}

// Parts returns the argument groups for req in emission order: program,
// options, method, headers, body, URL.
func (b *Builder) Parts(req *model.Request) []Part {
	parts := []Part{{Program}}

	for _, opt := range req.Options {
		if !opt.Enabled {
			continue
		}
		p := Part{opt.Flag}
		if opt.Value != nil {
			p = append(p, b.resolve(*opt.Value))
		}
		parts = append(parts, p)
	}

	if !req.Method.IsDefault() {
		parts = append(parts, Part{FlagMethod, req.Method.String()})
	}

	for _, h := range req.Headers {
		if !h.Enabled {
			continue
		}
		parts = append(parts, Part{FlagHeader, h.Key + ": " + b.resolve(h.Value)})
	}

	parts = append(parts, b.bodyParts(req.Body)...)
	parts = append(parts, Part{b.URL(req)})

	return parts
}

func (b *Builder) bodyParts(body *model.Body) []Part {
	if body == nil {
		return nil
	}

	switch body.Kind {
	case model.BodyRaw:
		content := b.resolve(body.Raw)
		// Whitespace-only content, after substitution, sends no body at all.
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return []Part{{FlagData, content}}
	case model.BodyFormData:
		var parts []Part
		for _, f := range body.Form {
			if !f.Enabled {
				continue
			}
			parts = append(parts, Part{FlagForm, f.Key + "=" + b.resolve(f.Value)})
		}
		return parts
	case model.BodyBinary:
		return []Part{{FlagDataBinary, "@" + body.Path}}
	default:
		return nil
	}
}

// Tokens returns the flat argument list for req.
func (b *Builder) Tokens(req *model.Request) []string {
	var tokens []string
	for _, p := range b.Parts(req) {
		tokens = append(tokens, p...)
	}
	return tokens
}

// Build renders req as a single-line command.
func (b *Builder) Build(req *model.Request) string {
	return Format(b.Tokens(req))
}

// BuildMultiline renders req with one argument group per line.
func (b *Builder) BuildMultiline(req *model.Request) string {
	parts := b.Parts(req)
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = Format(p)
	}
	return strings.Join(lines, lineContinuation)
}

// Build renders req as a curl command with placeholders resolved from vars.
func Build(req *model.Request, vars model.Variables) string {
	return ForVariables(vars).Build(req)
}

// BuildMultiline renders req with one argument group per line.
func BuildMultiline(req *model.Request, vars model.Variables) string {
	return ForVariables(vars).BuildMultiline(req)
}

// Parts returns the argument groups of req, URL last.
func Parts(req *model.Request, vars model.Variables) []Part {
	return ForVariables(vars).Parts(req)
}

// Tokens returns the unquoted arguments of req in order.
func Tokens(req *model.Request, vars model.Variables) []string {
	return ForVariables(vars).Tokens(req)
}
