// Package openapi converts OpenAPI 3 specifications into curlspec requests.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/abdul-hamid-achik/curlspec/packages/logging"
	"github.com/getkin/kin-openapi/openapi3"
)

var nonIdentPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// BaseURLVariable is the variable every imported URL starts with.
const BaseURLVariable = "baseUrl"

// Converter converts OpenAPI specs
type Converter struct {
	baseURL     string
	includeTags []string
	excludeTags []string
	includeOnly []string // specific operation IDs
}

// Option is a functional option for Converter
type Option func(*Converter)

// WithBaseURL sets a custom base URL, overriding the one from spec
func WithBaseURL(url string) Option {
	return func(c *Converter) {
		c.baseURL = url
	}
}

// WithTags filters operations by tags
func WithTags(tags []string) Option {
	return func(c *Converter) {
		c.includeTags = tags
	}
}

// WithExcludeTags excludes operations with these tags
func WithExcludeTags(tags []string) Option {
	return func(c *Converter) {
		c.excludeTags = tags
	}
}

// WithOperations filters to specific operation IDs
func WithOperations(ops []string) Option {
	return func(c *Converter) {
		c.includeOnly = ops
	}
}

// NewConverter creates a new OpenAPI converter
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Item is an imported request with the folder (its first tag) it belongs in.
type Item struct {
	Folder  string
	Request *model.Request
}

// Result holds everything converted from one document.
type Result struct {
	Title       string
	Items       []Item
	Environment *model.Environment
}

// ConvertFile converts an OpenAPI file or URL
func (c *Converter) ConvertFile(path string) (*Result, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	var doc *openapi3.T
	var err error

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		var u *url.URL
		u, err = url.Parse(path)
		if err == nil {
			doc, err = loader.LoadFromURI(u)
		}
	} else {
		doc, err = loader.LoadFromFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	return c.Convert(doc)
}

// ConvertData converts an OpenAPI document given as YAML or JSON.
func (c *Converter) ConvertData(data []byte) (*Result, error) {
	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	return c.Convert(doc)
}

// Convert converts an OpenAPI document
func (c *Converter) Convert(doc *openapi3.T) (*Result, error) {
	if err := doc.Validate(context.Background()); err != nil {
		// Some specs have minor validation issues; convert them anyway.
		logging.GetLogger().Warnf("OpenAPI spec validation: %v", err)
	}

	if doc.Paths == nil {
		return nil, fmt.Errorf("OpenAPI spec has no paths")
	}

	result := &Result{}
	if doc.Info != nil {
		result.Title = doc.Info.Title
	}

	baseURL := c.baseURL
	if baseURL == "" {
		baseURL = getBaseURL(doc)
	}
	envName := SanitizeName(result.Title)
	if envName == "" {
		envName = "openapi"
	}
	result.Environment = model.NewEnvironment(envName)
	result.Environment.AddVariable(BaseURLVariable, baseURL, false)

	// Get sorted paths for consistent output
	paths := make([]string, 0, len(doc.Paths.Map()))
	for path := range doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		pathItem := doc.Paths.Value(path)
		if pathItem == nil {
			continue
		}

		operations := []struct {
			method model.Method
			op     *openapi3.Operation
		}{
			{model.MethodGet, pathItem.Get},
			{model.MethodPost, pathItem.Post},
			{model.MethodPut, pathItem.Put},
			{model.MethodPatch, pathItem.Patch},
			{model.MethodDelete, pathItem.Delete},
			{model.MethodHead, pathItem.Head},
			{model.MethodOptions, pathItem.Options},
			{model.MethodTrace, pathItem.Trace},
		}

		for _, op := range operations {
			if op.op == nil || !c.shouldInclude(op.op) {
				continue
			}

			folder := ""
			if len(op.op.Tags) > 0 {
				folder = SanitizeName(op.op.Tags[0])
			}
			result.Items = append(result.Items, Item{
				Folder:  folder,
				Request: convertOperation(path, op.method, op.op, pathItem.Parameters),
			})
		}
	}

	return result, nil
}

func getBaseURL(doc *openapi3.T) string {
	if len(doc.Servers) > 0 && doc.Servers[0].URL != "" {
		return strings.TrimSuffix(doc.Servers[0].URL, "/")
	}
	return "http://localhost:3000"
}

func (c *Converter) shouldInclude(op *openapi3.Operation) bool {
	if len(c.includeOnly) > 0 && !contains(c.includeOnly, op.OperationID) {
		return false
	}

	if len(c.includeTags) > 0 {
		found := false
		for _, tag := range op.Tags {
			if contains(c.includeTags, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, tag := range op.Tags {
		if contains(c.excludeTags, tag) {
			return false
		}
	}

	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// convertOperation builds a request for one operation. Required query and
// header parameters are enabled; optional ones are kept but disabled.
func convertOperation(path string, method model.Method, op *openapi3.Operation, pathParams openapi3.Parameters) *model.Request {
	name := op.Summary
	if name == "" {
		name = op.OperationID
	}
	if name == "" {
		name = strings.ToLower(method.String()) + " " + path
	}

	allParams := append(append(openapi3.Parameters{}, pathParams...), op.Parameters...)

	req := model.NewRequest(method, "{{"+BaseURLVariable+"}}"+convertPathParams(path, allParams))
	req.Name = name

	for _, paramRef := range allParams {
		if paramRef == nil || paramRef.Value == nil {
			continue
		}
		param := paramRef.Value
		switch param.In {
		case openapi3.ParameterInQuery:
			req.Query = append(req.Query, model.QueryParam{
				Key:     param.Name,
				Value:   paramExample(param),
				Enabled: param.Required,
			})
		case openapi3.ParameterInHeader:
			req.Headers = append(req.Headers, model.Header{
				Key:     param.Name,
				Value:   paramExample(param),
				Enabled: param.Required,
			})
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		applyRequestBody(req, op.RequestBody.Value)
	}

	return req
}

// convertPathParams rewrites {param} segments into {{param}} placeholders.
func convertPathParams(path string, params openapi3.Parameters) string {
	result := path
	for _, paramRef := range params {
		if paramRef == nil || paramRef.Value == nil {
			continue
		}
		param := paramRef.Value
		if param.In == openapi3.ParameterInPath {
			result = strings.ReplaceAll(result, "{"+param.Name+"}", "{{"+param.Name+"}}")
		}
	}
	return result
}

// paramExample returns the documented example, or a placeholder named after
// the parameter.
func paramExample(param *openapi3.Parameter) string {
	if param.Example != nil {
		return fmt.Sprintf("%v", param.Example)
	}
	if param.Schema != nil && param.Schema.Value != nil {
		schema := param.Schema.Value
		if schema.Example != nil {
			return fmt.Sprintf("%v", schema.Example)
		}
		if schema.Default != nil {
			return fmt.Sprintf("{{%s:%v}}", param.Name, schema.Default)
		}
	}
	return "{{" + param.Name + "}}"
}

func applyRequestBody(req *model.Request, reqBody *openapi3.RequestBody) {
	contentTypes := make([]string, 0, len(reqBody.Content))
	for ct := range reqBody.Content {
		contentTypes = append(contentTypes, ct)
	}
	sort.Strings(contentTypes)

	// Prefer JSON
	for _, ct := range contentTypes {
		media := reqBody.Content[ct]
		if strings.Contains(ct, "json") && media.Schema != nil {
			req.AddHeader("Content-Type", "application/json")
			req.SetBody(model.RawBody(generateJSONValue(media.Schema.Value, 0)))
			return
		}
	}

	for _, ct := range contentTypes {
		media := reqBody.Content[ct]
		if media.Schema == nil || media.Schema.Value == nil {
			continue
		}
		switch {
		case strings.HasPrefix(ct, "multipart/form-data"):
			var fields []model.FormField
			for _, name := range sortedProperties(media.Schema.Value) {
				fields = append(fields, model.FormField{
					Key:     name,
					Value:   formExample(name, media.Schema.Value.Properties[name]),
					Enabled: true,
				})
			}
			req.SetBody(model.FormBody(fields...))
			return
		case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
			var parts []string
			for _, name := range sortedProperties(media.Schema.Value) {
				parts = append(parts, name+"="+formExample(name, media.Schema.Value.Properties[name]))
			}
			req.AddHeader("Content-Type", "application/x-www-form-urlencoded")
			req.SetBody(model.RawBody(strings.Join(parts, "&")))
			return
		}
	}
}

func sortedProperties(schema *openapi3.Schema) []string {
	props := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		props = append(props, name)
	}
	sort.Strings(props)
	return props
}

func formExample(name string, ref *openapi3.SchemaRef) string {
	if ref != nil && ref.Value != nil {
		if ref.Value.Example != nil {
			return fmt.Sprintf("%v", ref.Value.Example)
		}
		if ref.Value.Format == "binary" {
			return "@{{" + name + "}}"
		}
	}
	return "{{" + name + "}}"
}

func generateJSONValue(schema *openapi3.Schema, depth int) string {
	if schema == nil || depth > 5 {
		return "null"
	}

	// Use example if available
	if schema.Example != nil {
		if data, err := json.Marshal(schema.Example); err == nil {
			return string(data)
		}
	}

	switch {
	case schema.Type.Is(openapi3.TypeObject) || (schema.Type == nil && len(schema.Properties) > 0):
		return generateJSONObject(schema, depth)
	case schema.Type.Is(openapi3.TypeArray):
		if schema.Items != nil && schema.Items.Value != nil {
			return "[" + generateJSONValue(schema.Items.Value, depth+1) + "]"
		}
		return "[]"
	case schema.Type.Is(openapi3.TypeString):
		if len(schema.Enum) > 0 {
			return fmt.Sprintf("%q", fmt.Sprint(schema.Enum[0]))
		}
		switch schema.Format {
		case "date":
			return `"2024-01-01"`
		case "date-time":
			return `"2024-01-01T00:00:00Z"`
		case "email":
			return `"user@example.com"`
		case "uuid":
			return `"00000000-0000-0000-0000-000000000000"`
		}
		return `"example"`
	case schema.Type.Is(openapi3.TypeInteger):
		if schema.Min != nil {
			return fmt.Sprintf("%.0f", *schema.Min)
		}
		return "1"
	case schema.Type.Is(openapi3.TypeNumber):
		if schema.Min != nil {
			return fmt.Sprintf("%v", *schema.Min)
		}
		return "1.0"
	case schema.Type.Is(openapi3.TypeBoolean):
		return "true"
	default:
		return "null"
	}
}

func generateJSONObject(schema *openapi3.Schema, depth int) string {
	props := sortedProperties(schema)
	if len(props) == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for i, name := range props {
		sb.WriteString(strings.Repeat("  ", depth+1))
		sb.WriteString(fmt.Sprintf("%q: ", name))

		if prop := schema.Properties[name]; prop != nil && prop.Value != nil {
			sb.WriteString(generateJSONValue(prop.Value, depth+1))
		} else {
			sb.WriteString("null")
		}

		if i < len(props)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("}")
	return sb.String()
}

// SanitizeName turns a display name into a lowercase file name.
func SanitizeName(name string) string {
	result := nonIdentPattern.ReplaceAllString(name, "_")
	result = strings.Trim(result, "_")
	return strings.ToLower(result)
}
