package env

import (
	"regexp"
	"strings"
	"sync"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
)

// placeholderPattern matches {{name}} and {{name:default}}. The default may be
// empty; group 2 is absent when no colon was written.
var placeholderPattern = regexp.MustCompile(`\{\{([^:}]+)(?::([^}]*))?\}\}`)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// Substitute replaces every placeholder in input. A placeholder resolves to
// the variable's value, else to its default, else stays as written.
// Placeholders are consumed left to right and replacement text is never
// scanned again.
func Substitute(input string, vars model.Variables) string {
	if !strings.Contains(input, "{{") {
		return input
	}

	var sb strings.Builder
	pos := 0
	for pos < len(input) {
		loc := placeholderPattern.FindStringSubmatchIndex(input[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		sb.WriteString(input[pos:start])
		sb.WriteString(resolve(input, pos, loc, vars))
		pos = end
	}
	sb.WriteString(input[pos:])
	return sb.String()
}

// resolve computes the replacement for one match. loc holds submatch indexes
// relative to input[offset:].
func resolve(input string, offset int, loc []int, vars model.Variables) string {
	name := input[offset+loc[2] : offset+loc[3]]
	if val, ok := vars.Lookup(name); ok {
		return val
	}
	if loc[4] >= 0 {
		return input[offset+loc[4] : offset+loc[5]]
	}
	return input[offset+loc[0] : offset+loc[1]]
}

// Unresolved returns the names of placeholders in input that have neither a
// variable nor a default, in order of first appearance.
func Unresolved(input string, vars model.Variables) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(input, -1) {
		if m[4] >= 0 {
			continue
		}
		name := input[m[2]:m[3]]
		if _, ok := vars.Lookup(name); ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// HasUnresolved reports whether any placeholder in input would stay literal.
func HasUnresolved(input string, vars model.Variables) bool {
	return len(Unresolved(input, vars)) > 0
}

// Names returns every placeholder name in input, in order of first
// appearance, whether or not it has a default.
func Names(input string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(input, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Resolver binds a variable set to Substitute and reports each unresolved
// placeholder name once through its WarnFunc.
type Resolver struct {
	mu       sync.Mutex
	vars     model.Variables
	warnFunc WarnFunc
	warned   map[string]bool
}

// NewResolver returns a Resolver over vars. A nil set is treated as empty.
func NewResolver(vars model.Variables) *Resolver {
	if vars == nil {
		vars = make(model.Variables)
	}
	return &Resolver{
		vars:   vars,
		warned: make(map[string]bool),
	}
}

// SetWarnFunc sets a function to be called when warnings occur (e.g., unresolved variables)
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

// Resolve substitutes input, warning once per name left unresolved.
func (r *Resolver) Resolve(input string) string {
	r.check(input)
	return Substitute(input, r.vars)
}

func (r *Resolver) check(input string) {
	names := Unresolved(input, r.vars)
	if len(names) == 0 {
		return
	}

	r.mu.Lock()
	fn := r.warnFunc
	var fresh []string
	for _, name := range names {
		if !r.warned[name] {
			r.warned[name] = true
			fresh = append(fresh, name)
		}
	}
	r.mu.Unlock()

	if fn == nil {
		return
	}
	for _, name := range fresh {
		fn("unresolved variable: %s", name)
	}
}
