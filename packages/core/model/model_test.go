package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected Method
		wantErr  bool
	}{
		{"GET", MethodGet, false},
		{"post", MethodPost, false},
		{" Patch ", MethodPatch, false},
		{"", "", false},
		{"FETCH", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMethodIsDefault(t *testing.T) {
	assert.True(t, Method("").IsDefault())
	assert.True(t, MethodGet.IsDefault())
	assert.False(t, MethodHead.IsDefault())
	assert.True(t, Method("get").IsDefault())
	assert.True(t, Method(" Get ").IsDefault())
	assert.False(t, Method("post").IsDefault())
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "POST", MethodPost.String())
	assert.Equal(t, "PATCH", Method("patch").String())
	assert.Equal(t, "", Method("").String())
}

func TestParseBodyKind(t *testing.T) {
	for input, expected := range map[string]BodyKind{
		"":          BodyNone,
		"none":      BodyNone,
		"raw":       BodyRaw,
		"JSON":      BodyRaw,
		"form":      BodyFormData,
		"form-data": BodyFormData,
		"binary":    BodyBinary,
	} {
		got, err := ParseBodyKind(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	_, err := ParseBodyKind("graphql")
	assert.Error(t, err)
}

func TestBodyKindRoundTrip(t *testing.T) {
	for _, k := range []BodyKind{BodyNone, BodyRaw, BodyFormData, BodyBinary} {
		got, err := ParseBodyKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestRequestBuilders(t *testing.T) {
	req := NewRequest(MethodPost, "https://example.com").
		AddOption("-v").
		AddOption("--max-time", "10").
		AddHeader("Accept", "application/json").
		AddQueryParam("q", "x").
		SetBody(RawBody("{}"))

	require.Len(t, req.Options, 2)
	assert.Nil(t, req.Options[0].Value)
	require.NotNil(t, req.Options[1].Value)
	assert.Equal(t, "10", *req.Options[1].Value)
	assert.True(t, req.Headers[0].Enabled)
	assert.True(t, req.HasEnabledQuery())
	assert.Equal(t, BodyRaw, req.Body.Kind)

	req.Query[0].Enabled = false
	assert.False(t, req.HasEnabledQuery())
}

func TestEnvironmentSet(t *testing.T) {
	env := NewEnvironment("dev")
	env.AddVariable("host", "first", false)
	env.AddVariable("host", "second", false)
	env.AddVariable("token", "t", true)

	vars := env.Set()
	assert.Equal(t, "first", vars["host"])
	assert.Equal(t, "t", vars["token"])
	assert.Equal(t, []string{"t"}, env.Secrets())

	var nilEnv *Environment
	assert.Empty(t, nilEnv.Set())
	assert.Nil(t, nilEnv.Secrets())
}

func TestMerge(t *testing.T) {
	merged := Merge(Variables{"a": "1", "b": "1"}, nil, Variables{"b": "2"})
	assert.Equal(t, Variables{"a": "1", "b": "2"}, merged)

	val, ok := merged.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", val)
	_, ok = merged.Lookup("A")
	assert.False(t, ok)
}
