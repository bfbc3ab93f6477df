package command

import (
	"fmt"
	"testing"

	"github.com/abdul-hamid-achik/curlspec/packages/core/env"
	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestBuild_Simple(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	assert.Equal(t, "curl https://example.com", Build(req, nil))
}

func TestBuild_WithOptions(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	req.AddOption("-v")
	assert.Equal(t, "curl -v https://example.com", Build(req, nil))
}

func TestBuild_OptionValueIsSubstituted(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	req.AddOption("--max-time", "{{timeout:30}}")
	req.AddOption("--user-agent", "{{agent}}")

	got := Build(req, model.Variables{"agent": "curlspec"})
	assert.Equal(t, "curl --max-time 30 --user-agent curlspec https://example.com", got)
}

func TestBuild_EmptyOptionValueIsQuoted(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	req.Options = append(req.Options, model.Option{Flag: "--proxy", Value: strPtr(""), Enabled: true})
	assert.Equal(t, "curl --proxy '' https://example.com", Build(req, nil))
}

func TestBuild_WithHeaders(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	req.AddHeader("Content-Type", "application/json")
	assert.Equal(t, "curl -H 'Content-Type: application/json' https://example.com", Build(req, nil))
}

func TestBuild_HeaderValueIsSubstitutedButKeyIsNot(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	req.AddHeader("X-{{name}}", "{{token}}")

	got := Build(req, model.Variables{"name": "Ignored", "token": "abc123"})
	assert.Equal(t, "curl -H 'X-{{name}}: abc123' https://example.com", got)
}

func TestBuild_Method(t *testing.T) {
	tests := []struct {
		method   model.Method
		expected string
	}{
		{"", "curl https://example.com"},
		{model.MethodGet, "curl https://example.com"},
		{model.MethodPost, "curl -X POST https://example.com"},
		{model.MethodDelete, "curl -X DELETE https://example.com"},
		{model.MethodOptions, "curl -X OPTIONS https://example.com"},
		{"get", "curl https://example.com"},
		{"patch", "curl -X PATCH https://example.com"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("method %q", tt.method), func(t *testing.T) {
			req := model.NewRequest(tt.method, "https://example.com")
			assert.Equal(t, tt.expected, Build(req, nil))
		})
	}
}

func TestBuild_WithQueryParams(t *testing.T) {
	req := model.NewRequest("", "https://example.com")
	req.AddQueryParam("q", "test query")
	assert.Equal(t, "curl https://example.com?q=test%20query", Build(req, nil))
}

func TestBuild_JSONBody(t *testing.T) {
	req := model.NewRequest(model.MethodPost, "https://example.com")
	req.AddHeader("Content-Type", "application/json")
	req.SetBody(model.RawBody(`{"key": "value", "number": 42}`))

	got := Build(req, nil)
	assert.Contains(t, got, `'{"key": "value", "number": 42}'`)
	assert.Equal(t, `curl -X POST -H 'Content-Type: application/json' -d '{"key": "value", "number": 42}' https://example.com`, got)
}

func TestBuild_RawBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		vars     model.Variables
		expected string
	}{
		{
			name:     "plain text",
			body:     "hello",
			expected: "curl -X POST -d hello https://example.com",
		},
		{
			name:     "whitespace only is omitted",
			body:     "  \n\t ",
			expected: "curl -X POST https://example.com",
		},
		{
			name:     "empty is omitted",
			body:     "",
			expected: "curl -X POST https://example.com",
		},
		{
			name:     "resolves to empty is omitted",
			body:     "{{payload:}}",
			expected: "curl -X POST https://example.com",
		},
		{
			name:     "substituted",
			body:     `{"id": "{{id}}"}`,
			vars:     model.Variables{"id": "42"},
			expected: `curl -X POST -d '{"id": "42"}' https://example.com`,
		},
		{
			name:     "single quote escaped",
			body:     "it's",
			expected: `curl -X POST -d 'it'"'"'s' https://example.com`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := model.NewRequest(model.MethodPost, "https://example.com")
			req.SetBody(model.RawBody(tt.body))
			assert.Equal(t, tt.expected, Build(req, tt.vars))
		})
	}
}

func TestBuild_FormBody(t *testing.T) {
	req := model.NewRequest(model.MethodPost, "https://example.com/upload")
	req.SetBody(model.FormBody(
		model.FormField{Key: "a", Value: "1", Enabled: true},
		model.FormField{Key: "b", Value: "2", Enabled: false},
		model.FormField{Key: "c", Value: "{{greeting}}", Enabled: true},
		model.FormField{Key: "file", Value: "@photo.png", Enabled: true},
	))

	got := Build(req, model.Variables{"greeting": "hello world"})
	assert.Equal(t, "curl -X POST -F a=1 -F 'c=hello world' -F file=@photo.png https://example.com/upload", got)
}

func TestBuild_BinaryBody(t *testing.T) {
	t.Run("plain path", func(t *testing.T) {
		req := model.NewRequest(model.MethodPut, "https://example.com/blob")
		req.SetBody(model.BinaryBody("/tmp/data.bin"))
		assert.Equal(t, "curl -X PUT --data-binary @/tmp/data.bin https://example.com/blob", Build(req, nil))
	})

	t.Run("path is not substituted", func(t *testing.T) {
		req := model.NewRequest(model.MethodPut, "https://example.com/blob")
		req.SetBody(model.BinaryBody("/tmp/{{name}}.bin"))
		got := Build(req, model.Variables{"name": "resolved"})
		assert.Equal(t, "curl -X PUT --data-binary '@/tmp/{{name}}.bin' https://example.com/blob", got)
	})

	t.Run("path with spaces", func(t *testing.T) {
		req := model.NewRequest(model.MethodPut, "https://example.com/blob")
		req.SetBody(model.BinaryBody("/tmp/my data.bin"))
		assert.Equal(t, "curl -X PUT --data-binary '@/tmp/my data.bin' https://example.com/blob", Build(req, nil))
	})
}

func TestBuild_NoneBody(t *testing.T) {
	req := model.NewRequest(model.MethodPost, "https://example.com")
	req.SetBody(model.NoBody())
	assert.Equal(t, "curl -X POST https://example.com", Build(req, nil))
}

func TestBuild_DisabledItemsNeverAppear(t *testing.T) {
	req := &model.Request{
		URL: "https://example.com",
		Options: []model.Option{
			{Flag: "--disabled-first", Enabled: false},
			{Flag: "-v", Enabled: true},
			{Flag: "--disabled-last", Value: strPtr("x"), Enabled: false},
		},
		Headers: []model.Header{
			{Key: "X-Off-1", Value: "a", Enabled: false},
			{Key: "X-On", Value: "b", Enabled: true},
			{Key: "X-Off-2", Value: "c", Enabled: false},
		},
		Query: []model.QueryParam{
			{Key: "off1", Value: "1", Enabled: false},
			{Key: "on", Value: "2", Enabled: true},
			{Key: "off2", Value: "3", Enabled: false},
		},
	}

	got := Build(req, nil)
	assert.Equal(t, "curl -v -H 'X-On: b' https://example.com?on=2", got)
	for _, absent := range []string{"disabled", "X-Off", "off1", "off2"} {
		assert.NotContains(t, got, absent)
	}
}

func TestBuild_AllQueryParamsDisabled(t *testing.T) {
	req := model.NewRequest("", "https://example.com/path")
	req.Query = []model.QueryParam{{Key: "a", Value: "1", Enabled: false}}
	assert.Equal(t, "curl https://example.com/path", Build(req, nil))
}

func TestBuild_PreservesOrder(t *testing.T) {
	req := model.NewRequest(model.MethodPost, "https://example.com")
	req.AddOption("-s").AddOption("-L").AddOption("-k")
	req.AddHeader("C", "3").AddHeader("A", "1").AddHeader("B", "2")
	req.AddQueryParam("z", "26").AddQueryParam("a", "1").AddQueryParam("m", "13")
	req.SetBody(model.FormBody(
		model.FormField{Key: "second", Value: "2", Enabled: true},
		model.FormField{Key: "first", Value: "1", Enabled: true},
	))

	expected := "curl -s -L -k -X POST -H 'C: 3' -H 'A: 1' -H 'B: 2' -F second=2 -F first=1 https://example.com?z=26&a=1&m=13"
	assert.Equal(t, expected, Build(req, nil))
}

func TestBuild_URLIsNeverQuoted(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://example.com/a b", "curl https://example.com/a b"},
		{`https://example.com?param={"key":"value"}`, `curl https://example.com?param={"key":"value"}`},
		{"http://example.com/path?q=test&other=value", "curl http://example.com/path?q=test&other=value"},
		{"ftp://files.example.com/{dir}", "curl ftp://files.example.com/{dir}"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, Build(model.NewRequest("", tt.url), nil))
		})
	}
}

func TestBuild_URLWithoutSchemeFollowsQuotingRules(t *testing.T) {
	assert.Equal(t, "curl example.com/path", Build(model.NewRequest("", "example.com/path"), nil))
	assert.Equal(t, "curl '{{host}}/path'", Build(model.NewRequest("", "{{host}}/path"), nil))
	assert.Equal(t, "curl ''", Build(model.NewRequest("", ""), nil))
}

func TestBuild_URLSubstitution(t *testing.T) {
	req := model.NewRequest("", "{{base_url}}/users/{{id:1}}")
	req.AddQueryParam("key", "{{api_key}}")

	vars := model.Variables{"base_url": "https://api.example.com", "api_key": "secret-key"}
	assert.Equal(t, "curl https://api.example.com/users/1?key=secret-key", Build(req, vars))
}

func TestBuild_FullRequest(t *testing.T) {
	environment := model.NewEnvironment("dev")
	environment.AddVariable("base_url", "https://api.example.com", false)
	environment.AddVariable("token", "abc123", true)

	req := model.NewRequest(model.MethodPatch, "{{base_url}}/users/42")
	req.AddOption("-s")
	req.AddHeader("Authorization", "Bearer {{token}}")
	req.AddHeader("Content-Type", "application/json")
	req.AddQueryParam("notify", "true")
	req.SetBody(model.RawBody(`{"name": "Jane"}`))

	expected := `curl -s -X PATCH -H 'Authorization: Bearer abc123' -H 'Content-Type: application/json' -d '{"name": "Jane"}' https://api.example.com/users/42?notify=true`
	assert.Equal(t, expected, Build(req, environment.Set()))
}

func TestParts(t *testing.T) {
	req := model.NewRequest(model.MethodPost, "https://example.com")
	req.AddOption("-v")
	req.AddHeader("Accept", "*/*")
	req.SetBody(model.RawBody("x=1"))

	parts := Parts(req, nil)
	expected := []Part{
		{"curl"},
		{"-v"},
		{"-X", "POST"},
		{"-H", "Accept: */*"},
		{"-d", "x=1"},
		{"https://example.com"},
	}
	assert.Equal(t, expected, parts)

	assert.Equal(t, []string{"curl", "-v", "-X", "POST", "-H", "Accept: */*", "-d", "x=1", "https://example.com"}, Tokens(req, nil))
}

func TestBuildMultiline(t *testing.T) {
	req := model.NewRequest(model.MethodPost, "https://example.com")
	req.AddHeader("Content-Type", "application/json")

	expected := "curl \\\n  -X POST \\\n  -H 'Content-Type: application/json' \\\n  https://example.com"
	assert.Equal(t, expected, BuildMultiline(req, nil))
}

func TestNewBuilder_CustomResolver(t *testing.T) {
	resolver := env.NewResolver(model.Variables{"host": "example.com"})
	var warnings []string
	resolver.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})

	req := model.NewRequest("", "https://{{host}}/{{path}}")
	req.AddHeader("X-Trace", "{{trace}}")

	got := NewBuilder(resolver.Resolve).Build(req)
	assert.Equal(t, "curl -H 'X-Trace: {{trace}}' https://example.com/{{path}}", got)
	require.Len(t, warnings, 2)
	assert.ElementsMatch(t, []string{"unresolved variable: trace", "unresolved variable: path"}, warnings)
}

func TestNewBuilder_NilResolver(t *testing.T) {
	req := model.NewRequest("", "https://{{host}}")
	assert.Equal(t, "curl https://{{host}}", NewBuilder(nil).Build(req))
}
