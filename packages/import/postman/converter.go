// Package postman converts Postman Collection v2.1 files into curlspec requests.
package postman

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/tidwall/gjson"
)

var nonIdentPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Converter converts Postman collections.
type Converter struct {
	keepDisabled bool
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithDisabled configures whether disabled entries are kept as disabled
// items or dropped.
func WithDisabled(keep bool) Option {
	return func(c *Converter) {
		c.keepDisabled = keep
	}
}

// NewConverter creates a new Postman converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		keepDisabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Item is an imported request with the folder path it was found under.
type Item struct {
	Folder  string
	Request *model.Request
}

// Result holds everything converted from one collection.
type Result struct {
	Name      string
	Items     []Item
	Variables *model.Environment
}

// ConvertFile converts a Postman collection file.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return c.Convert(data)
}

// Convert converts Postman collection JSON.
func (c *Converter) Convert(data []byte) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse Postman collection: invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.Get("item").IsArray() {
		return nil, fmt.Errorf("failed to parse Postman collection: missing item list")
	}

	result := &Result{Name: doc.Get("info.name").String()}

	if err := c.convertItems(doc.Get("item"), "", result); err != nil {
		return nil, err
	}

	vars := model.NewEnvironment(SanitizeName(result.Name))
	doc.Get("variable").ForEach(func(_, v gjson.Result) bool {
		if v.Get("disabled").Bool() {
			return true
		}
		vars.AddVariable(v.Get("key").String(), v.Get("value").String(), v.Get("type").String() == "secret")
		return true
	})
	if len(vars.Variables) > 0 {
		result.Variables = vars
	}

	return result, nil
}

func (c *Converter) convertItems(items gjson.Result, folder string, result *Result) error {
	var err error
	items.ForEach(func(_, item gjson.Result) bool {
		name := item.Get("name").String()

		// Folders carry nested items instead of a request.
		if item.Get("item").Exists() {
			sub := SanitizeName(name)
			if folder != "" {
				sub = folder + "/" + sub
			}
			err = c.convertItems(item.Get("item"), sub, result)
			return err == nil
		}

		reqJSON := item.Get("request")
		if !reqJSON.Exists() {
			return true
		}

		var req *model.Request
		req, err = c.convertRequest(name, reqJSON)
		if err != nil {
			err = fmt.Errorf("request %q: %w", name, err)
			return false
		}
		result.Items = append(result.Items, Item{Folder: folder, Request: req})
		return true
	})
	return err
}

func (c *Converter) convertRequest(name string, r gjson.Result) (*model.Request, error) {
	// A request may be given as a bare URL string.
	if r.Type == gjson.String {
		req := model.NewRequest("", r.String())
		req.Name = name
		return req, nil
	}

	method, err := model.ParseMethod(r.Get("method").String())
	if err != nil {
		return nil, err
	}

	req := model.NewRequest(method, "")
	req.Name = name
	c.convertURL(req, r.Get("url"))

	c.applyAuth(req, r.Get("auth"))

	r.Get("header").ForEach(func(_, h gjson.Result) bool {
		disabled := h.Get("disabled").Bool()
		if disabled && !c.keepDisabled {
			return true
		}
		req.Headers = append(req.Headers, model.Header{
			Key:     h.Get("key").String(),
			Value:   h.Get("value").String(),
			Enabled: !disabled,
		})
		return true
	})

	req.Body = c.convertBody(r.Get("body"))

	return req, nil
}

// convertURL fills the base URL and query list. When a structured query
// list is present the query part of the raw URL is dropped in its favour.
func (c *Converter) convertURL(req *model.Request, u gjson.Result) {
	if u.Type == gjson.String {
		req.URL = u.String()
		return
	}

	raw := u.Get("raw").String()
	query := u.Get("query")
	if !query.IsArray() || len(query.Array()) == 0 {
		req.URL = raw
		return
	}

	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[:i]
	}
	req.URL = raw

	query.ForEach(func(_, q gjson.Result) bool {
		disabled := q.Get("disabled").Bool()
		if disabled && !c.keepDisabled {
			return true
		}
		req.Query = append(req.Query, model.QueryParam{
			Key:     q.Get("key").String(),
			Value:   q.Get("value").String(),
			Enabled: !disabled,
		})
		return true
	})
}

func (c *Converter) applyAuth(req *model.Request, auth gjson.Result) {
	switch auth.Get("type").String() {
	case "bearer":
		if token := authValue(auth.Get("bearer"), "token"); token != "" {
			req.AddHeader("Authorization", "Bearer "+token)
		}
	case "basic":
		if user := authValue(auth.Get("basic"), "username"); user != "" {
			req.AddOption("-u", user+":"+authValue(auth.Get("basic"), "password"))
		}
	case "apikey":
		entries := auth.Get("apikey")
		key := authValue(entries, "key")
		if key == "" {
			return
		}
		value := authValue(entries, "value")
		if authValue(entries, "in") == "query" {
			req.AddQueryParam(key, value)
		} else {
			req.AddHeader(key, value)
		}
	}
}

// authValue looks up a key in Postman's [{key, value}] auth attribute list.
func authValue(entries gjson.Result, key string) string {
	var value string
	entries.ForEach(func(_, e gjson.Result) bool {
		if e.Get("key").String() == key {
			value = e.Get("value").String()
			return false
		}
		return true
	})
	return value
}

func (c *Converter) convertBody(body gjson.Result) *model.Body {
	if !body.Exists() || body.Get("disabled").Bool() {
		return nil
	}

	switch body.Get("mode").String() {
	case "raw":
		if raw := body.Get("raw").String(); raw != "" {
			return model.RawBody(raw)
		}
	case "urlencoded":
		var pairs []string
		body.Get("urlencoded").ForEach(func(_, kv gjson.Result) bool {
			if !kv.Get("disabled").Bool() {
				pairs = append(pairs, kv.Get("key").String()+"="+kv.Get("value").String())
			}
			return true
		})
		if len(pairs) > 0 {
			return model.RawBody(strings.Join(pairs, "&"))
		}
	case "formdata":
		var fields []model.FormField
		body.Get("formdata").ForEach(func(_, f gjson.Result) bool {
			disabled := f.Get("disabled").Bool()
			if disabled && !c.keepDisabled {
				return true
			}
			value := f.Get("value").String()
			if f.Get("type").String() == "file" {
				value = "@" + f.Get("src").String()
			}
			fields = append(fields, model.FormField{
				Key:     f.Get("key").String(),
				Value:   value,
				Enabled: !disabled,
			})
			return true
		})
		if len(fields) > 0 {
			return model.FormBody(fields...)
		}
	case "file":
		if src := body.Get("file.src").String(); src != "" {
			return model.BinaryBody(src)
		}
	}
	return nil
}

// SanitizeName turns a display name into a lowercase file name.
func SanitizeName(name string) string {
	result := nonIdentPattern.ReplaceAllString(name, "_")
	result = strings.Trim(result, "_")
	return strings.ToLower(result)
}
