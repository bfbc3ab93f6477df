package env

import (
	"fmt"
	"testing"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     model.Variables
		expected string
	}{
		{
			name:     "no placeholders",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "known variable",
			input:    "key={{api_key}}",
			vars:     model.Variables{"api_key": "secret-key"},
			expected: "key=secret-key",
		},
		{
			name:     "multiple variables",
			input:    "{{api_url}}/users?key={{api_key}}",
			vars:     model.Variables{"api_url": "https://api.example.com", "api_key": "secret-key"},
			expected: "https://api.example.com/users?key=secret-key",
		},
		{
			name:     "default used when absent",
			input:    "{{api_url:https://default.example.com}}/users",
			expected: "https://default.example.com/users",
		},
		{
			name:     "variable wins over default",
			input:    "{{x:fallback}}",
			vars:     model.Variables{"x": "value"},
			expected: "value",
		},
		{
			name:     "empty default",
			input:    "a{{x:}}b",
			expected: "ab",
		},
		{
			name:     "unresolved stays literal",
			input:    "hello {{unknown}}",
			expected: "hello {{unknown}}",
		},
		{
			name:     "unresolved does not block later placeholders",
			input:    "{{missing}} and {{name}}",
			vars:     model.Variables{"name": "world"},
			expected: "{{missing}} and world",
		},
		{
			name:     "repeated placeholder",
			input:    "{{a}}-{{a}}",
			vars:     model.Variables{"a": "1"},
			expected: "1-1",
		},
		{
			name:     "value is not re-expanded",
			input:    "{{outer}}",
			vars:     model.Variables{"outer": "{{inner}}", "inner": "nope"},
			expected: "{{inner}}",
		},
		{
			name:     "lookup is case sensitive",
			input:    "{{Name}}",
			vars:     model.Variables{"name": "lower"},
			expected: "{{Name}}",
		},
		{
			name:     "unmatched braces untouched",
			input:    "{{broken and {single} }}",
			expected: "{{broken and {single} }}",
		},
		{
			name:     "default keeps colons",
			input:    "{{url:http://localhost:8080}}",
			expected: "http://localhost:8080",
		},
		{
			name:     "json body",
			input:    `{"token": "{{token}}", "count": {{count:1}}}`,
			vars:     model.Variables{"token": "abc"},
			expected: `{"token": "abc", "count": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Substitute(tt.input, tt.vars))
		})
	}
}

func TestSubstituteIdempotentOnResolvedInput(t *testing.T) {
	vars := model.Variables{"host": "example.com"}
	once := Substitute("https://{{host}}/path", vars)
	assert.Equal(t, once, Substitute(once, vars))
}

func TestUnresolved(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     model.Variables
		expected []string
	}{
		{
			name:     "no variables",
			input:    "hello world",
			expected: nil,
		},
		{
			name:     "resolved variable",
			input:    "{{foo}}",
			vars:     model.Variables{"foo": "bar"},
			expected: nil,
		},
		{
			name:     "default counts as resolved",
			input:    "{{foo:bar}}",
			expected: nil,
		},
		{
			name:     "mixed resolved and unresolved",
			input:    "{{foo}} and {{bar}} and {{baz}}",
			vars:     model.Variables{"bar": "middle"},
			expected: []string{"foo", "baz"},
		},
		{
			name:     "duplicates reported once",
			input:    "{{foo}}/{{foo}}",
			expected: []string{"foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unresolved(tt.input, tt.vars))
			assert.Equal(t, len(tt.expected) > 0, HasUnresolved(tt.input, tt.vars))
		})
	}
}

func TestResolverWarnsOncePerName(t *testing.T) {
	r := NewResolver(model.Variables{"known": "yes"})

	var warnings []string
	r.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})

	assert.Equal(t, "yes {{missing}}", r.Resolve("{{known}} {{missing}}"))
	assert.Equal(t, "{{missing}}", r.Resolve("{{missing}}"))

	assert.Equal(t, []string{"unresolved variable: missing"}, warnings)
}

func TestResolverNilVariables(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, "b-b", r.Resolve("{{a:b}}-{{a:b}}"))
	assert.Equal(t, "{{a}}", r.Resolve("{{a}}"))
}

func TestNames(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "b", "$uuid"},
		Names("{{a}}/{{b:x}}/{{a}}/{{$uuid}}/{{broken"))
	assert.Empty(t, Names("plain"))
}
