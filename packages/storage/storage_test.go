package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/curlspec/packages/command"
	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequest = `name: Create user
method: post
url: "{{base_url}}/users"
options:
  - flag: -s
  - flag: --max-time
    value: 10
  - flag: -v
    disabled: true
headers:
  - key: Content-Type
    value: application/json
  - key: X-Debug
    value: "1"
    disabled: true
query:
  - key: notify
    value: "true"
body:
  type: raw
  content: |
    {"name": "{{name:Jane}}"}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRequest(t *testing.T) {
	path := writeFile(t, t.TempDir(), "create-user.yaml", sampleRequest)

	req, err := LoadRequest(path)
	require.NoError(t, err)

	assert.Equal(t, "Create user", req.Name)
	assert.Equal(t, model.MethodPost, req.Method)
	assert.Equal(t, "{{base_url}}/users", req.URL)
	require.Len(t, req.Options, 3)
	assert.Equal(t, "10", *req.Options[1].Value)
	assert.False(t, req.Options[2].Enabled)
	require.Len(t, req.Headers, 2)
	assert.True(t, req.Headers[0].Enabled)
	assert.False(t, req.Headers[1].Enabled)
	require.NotNil(t, req.Body)
	assert.Equal(t, model.BodyRaw, req.Body.Kind)

	got := command.Build(req, model.Variables{"base_url": "https://api.example.com"})
	expected := `curl -s --max-time 10 -X POST -H 'Content-Type: application/json' -d '{"name": "Jane"}` + "\n" + `' https://api.example.com/users?notify=true`
	assert.Equal(t, expected, got)
}

func TestLoadRequest_NameFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "health.yml", "url: https://example.com/health\n")

	req, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, "health", req.Name)
	assert.Equal(t, model.Method(""), req.Method)
}

func TestLoadRequest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRequest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := writeFile(t, dir, "unknown.yaml", "url: x\nverb: GET\n")
	_, err = LoadRequest(unknown)
	assert.Error(t, err)

	badMethod := writeFile(t, dir, "bad.yaml", "url: x\nmethod: FETCH\n")
	_, err = LoadRequest(badMethod)
	assert.Error(t, err)

	noPath := writeFile(t, dir, "nopath.yaml", "url: x\nbody:\n  type: binary\n")
	_, err = LoadRequest(noPath)
	assert.Error(t, err)
}

func TestSaveRequestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	req := model.NewRequest(model.MethodPut, "https://example.com/upload")
	req.Name = "upload"
	req.AddOption("--compressed")
	req.AddHeader("X-Token", "{{token}}")
	req.Headers = append(req.Headers, model.Header{Key: "X-Off", Value: "1"})
	req.SetBody(model.FormBody(
		model.FormField{Key: "file", Value: "@a.png", Enabled: true},
		model.FormField{Key: "skip", Value: "x"},
	))

	path, err := SaveRequest(req, filepath.Join(dir, "nested", "upload"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "upload.yaml"), path)

	loaded, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, command.Build(req, nil), command.Build(loaded, nil))
	assert.False(t, loaded.Headers[1].Enabled)
	assert.False(t, loaded.Body.Form[1].Enabled)
}

func TestListAndLoadRequests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "url: https://b.example.com\n")
	writeFile(t, dir, "a/one.yml", "url: https://a.example.com\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "broken.yaml", "url: [\n")

	files, err := ListRequests(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("a", "one.yml"), "b.yaml", "broken.yaml"}, files)

	loaded, err := LoadRequests(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
	require.Len(t, loaded, 2)
	assert.Equal(t, "one", loaded[0].Request.Name)

	missing, err := ListRequests(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestResolveRequestPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users/list.yaml", "url: https://example.com\n")

	got, err := ResolveRequestPath(dir, "users/list")
	require.NoError(t, err)
	assert.Equal(t, path, got)

	got, err = ResolveRequestPath(dir, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = ResolveRequestPath(dir, "nothing")
	assert.Error(t, err)
}

func TestEnvironmentFiles(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "dev.yaml", `variables:
  - key: base_url
    value: http://localhost:8080
  - key: token
    value: dev-token
    secret: true
`)
	writeFile(t, dir, "flat.yml", "name: staging\nbase_url: https://staging.example.com\nretries: 3\n")
	writeFile(t, dir, "bad.yaml", "- a\n- b\n")

	names, err := ListEnvironments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "dev", "flat"}, names)

	dev, err := FindEnvironment(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", dev.Name)
	assert.Equal(t, "http://localhost:8080", dev.Set()["base_url"])
	assert.Equal(t, []string{"dev-token"}, dev.Secrets())

	flat, err := FindEnvironment(dir, "flat")
	require.NoError(t, err)
	assert.Equal(t, "staging", flat.Name)
	require.Len(t, flat.Variables, 2)
	assert.Equal(t, "base_url", flat.Variables[0].Key)
	assert.Equal(t, "3", flat.Variables[1].Value)

	_, err = FindEnvironment(dir, "bad")
	assert.Error(t, err)

	_, err = FindEnvironment(dir, "prod")
	assert.Error(t, err)
}

func TestSaveEnvironment(t *testing.T) {
	dir := t.TempDir()
	env := model.NewEnvironment("prod")
	env.AddVariable("token", "s3cr3t", true)

	require.NoError(t, SaveEnvironment(env, filepath.Join(dir, "prod")))

	loaded, err := FindEnvironment(dir, "prod")
	require.NoError(t, err)
	assert.Equal(t, env.Variables, loaded.Variables)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"full request", sampleRequest, true},
		{"minimal", "url: https://example.com\n", true},
		{"missing url", "method: GET\n", false},
		{"unknown field", "url: x\nverb: GET\n", false},
		{"bad method", "url: x\nmethod: FETCH\n", false},
		{"bad body type", "url: x\nbody:\n  type: graphql\n", false},
		{"header without key", "url: x\nheaders:\n  - value: y\n", false},
		{"option without flag", "url: x\noptions:\n  - value: y\n", false},
		{"binary without path", "url: x\nbody:\n  type: binary\n", false},
		{"not yaml", "url: [", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.content))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := Validate([]byte("verb: GET\nheaders: nope\n"))
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.GreaterOrEqual(t, len(vErr.Problems), 3)
}
