// Package insomnia converts Insomnia exports into curlspec requests and environments.
package insomnia

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/tidwall/gjson"
)

var (
	namespacedVarPattern = regexp.MustCompile(`\{\{\s*_\.([\w.-]+)\s*\}\}`)
	spacedVarPattern     = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)
	nonIdentPattern      = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	secretKeyPattern     = regexp.MustCompile(`(?i)(token|secret|password|passwd|api[_-]?key|credential)`)
)

// Converter converts Insomnia exports.
type Converter struct {
	keepDisabled bool
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithDisabled configures whether disabled headers, parameters and form
// fields are kept (as disabled entries) or dropped.
func WithDisabled(keep bool) Option {
	return func(c *Converter) {
		c.keepDisabled = keep
	}
}

// NewConverter creates a new Insomnia converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		keepDisabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export represents an Insomnia export file.
type Export struct {
	Type         string     `json:"_type"`
	ExportFormat int        `json:"__export_format"`
	Resources    []Resource `json:"resources"`
}

// Resource represents an Insomnia resource (request, folder, environment, etc).
type Resource struct {
	ID             string      `json:"_id"`
	Type           string      `json:"_type"`
	ParentID       string      `json:"parentId"`
	Name           string      `json:"name"`
	Method         string      `json:"method,omitempty"`
	URL            string      `json:"url,omitempty"`
	Headers        []Parameter `json:"headers,omitempty"`
	Body           *Body       `json:"body,omitempty"`
	Parameters     []Parameter `json:"parameters,omitempty"`
	Authentication *Auth       `json:"authentication,omitempty"`
}

// Body represents an Insomnia request body.
type Body struct {
	MimeType string      `json:"mimeType,omitempty"`
	Text     string      `json:"text,omitempty"`
	FileName string      `json:"fileName,omitempty"`
	Params   []Parameter `json:"params,omitempty"`
}

// Parameter is a name/value pair used for headers, query and form parameters.
type Parameter struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Auth represents Insomnia authentication.
type Auth struct {
	Type     string `json:"type"`
	Disabled bool   `json:"disabled,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
}

// Item is an imported request with the folder path it was found under.
type Item struct {
	Folder  string
	Request *model.Request
}

// Result holds everything converted from one export.
type Result struct {
	Items        []Item
	Environments []*model.Environment
}

// ConvertFile converts an Insomnia export file.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return c.Convert(data)
}

// Convert converts Insomnia export JSON.
func (c *Converter) Convert(data []byte) (*Result, error) {
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse Insomnia export: %w", err)
	}

	folders := make(map[string]Resource)
	for _, res := range export.Resources {
		if res.Type == "request_group" {
			folders[res.ID] = res
		}
	}

	result := &Result{}
	for _, res := range export.Resources {
		if res.Type != "request" {
			continue
		}
		req, err := c.convertRequest(res)
		if err != nil {
			return nil, fmt.Errorf("request %q: %w", res.Name, err)
		}
		result.Items = append(result.Items, Item{
			Folder:  getFolderPath(res.ParentID, folders),
			Request: req,
		})
	}

	result.Environments = extractEnvironments(data)

	return result, nil
}

func (c *Converter) convertRequest(res Resource) (*model.Request, error) {
	method, err := model.ParseMethod(res.Method)
	if err != nil {
		return nil, err
	}

	req := model.NewRequest(method, ConvertVariables(res.URL))
	req.Name = res.Name

	if res.Authentication != nil && !res.Authentication.Disabled {
		c.applyAuth(req, res.Authentication)
	}

	for _, p := range res.Parameters {
		if p.Disabled && !c.keepDisabled {
			continue
		}
		req.Query = append(req.Query, model.QueryParam{
			Key:     p.Name,
			Value:   ConvertVariables(p.Value),
			Enabled: !p.Disabled,
		})
	}

	for _, h := range res.Headers {
		if h.Disabled && !c.keepDisabled {
			continue
		}
		req.Headers = append(req.Headers, model.Header{
			Key:     h.Name,
			Value:   ConvertVariables(h.Value),
			Enabled: !h.Disabled,
		})
	}

	if res.Body != nil {
		req.Body = c.convertBody(res.Body)
	}

	return req, nil
}

func (c *Converter) applyAuth(req *model.Request, auth *Auth) {
	switch auth.Type {
	case "basic":
		if auth.Username != "" {
			req.AddOption("-u", ConvertVariables(auth.Username)+":"+ConvertVariables(auth.Password))
		}
	case "bearer":
		if auth.Token != "" {
			prefix := auth.Prefix
			if prefix == "" {
				prefix = "Bearer"
			}
			req.AddHeader("Authorization", prefix+" "+ConvertVariables(auth.Token))
		}
	}
}

func (c *Converter) convertBody(body *Body) *model.Body {
	switch {
	case strings.HasPrefix(body.MimeType, "multipart/form-data"),
		strings.HasPrefix(body.MimeType, "application/x-www-form-urlencoded"):
		var fields []model.FormField
		for _, p := range body.Params {
			if p.Disabled && !c.keepDisabled {
				continue
			}
			value := ConvertVariables(p.Value)
			if p.Type == "file" && p.FileName != "" {
				value = "@" + p.FileName
			}
			fields = append(fields, model.FormField{Key: p.Name, Value: value, Enabled: !p.Disabled})
		}
		if len(fields) == 0 {
			return nil
		}
		return model.FormBody(fields...)
	case body.FileName != "":
		return model.BinaryBody(body.FileName)
	case body.Text != "":
		return model.RawBody(ConvertVariables(body.Text))
	default:
		return nil
	}
}

// extractEnvironments reads environment resources. Their data is free-form
// JSON, so nested objects are flattened into dotted keys.
func extractEnvironments(data []byte) []*model.Environment {
	var envs []*model.Environment
	gjson.GetBytes(data, "resources").ForEach(func(_, res gjson.Result) bool {
		if res.Get("_type").String() != "environment" {
			return true
		}
		env := model.NewEnvironment(res.Get("name").String())
		flatten("", res.Get("data"), env)
		if len(env.Variables) > 0 {
			envs = append(envs, env)
		}
		return true
	})
	return envs
}

func flatten(prefix string, value gjson.Result, env *model.Environment) {
	if !value.IsObject() {
		return
	}
	keys := make([]string, 0)
	values := make(map[string]gjson.Result)
	value.ForEach(func(k, v gjson.Result) bool {
		keys = append(keys, k.String())
		values[k.String()] = v
		return true
	})
	sort.Strings(keys)

	for _, k := range keys {
		v := values[k]
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if v.IsObject() {
			flatten(name, v, env)
			continue
		}
		env.AddVariable(name, v.String(), secretKeyPattern.MatchString(k))
	}
}

func getFolderPath(parentID string, folders map[string]Resource) string {
	var path []string
	currentID := parentID

	for {
		folder, exists := folders[currentID]
		if !exists {
			break
		}
		path = append([]string{SanitizeName(folder.Name)}, path...)
		currentID = folder.ParentID
	}

	return strings.Join(path, "/")
}

// ConvertVariables rewrites Insomnia template tags ({{ _.name }} or
// {{ name }}) into plain {{name}} placeholders.
func ConvertVariables(s string) string {
	s = namespacedVarPattern.ReplaceAllString(s, "{{$1}}")
	s = spacedVarPattern.ReplaceAllString(s, "{{$1}}")
	return s
}

// SanitizeName turns a display name into a lowercase file name.
func SanitizeName(name string) string {
	result := nonIdentPattern.ReplaceAllString(name, "_")
	result = strings.Trim(result, "_")
	return strings.ToLower(result)
}
