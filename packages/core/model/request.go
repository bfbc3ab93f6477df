package model

import (
	"fmt"
	"strings"
)

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// Methods lists every supported HTTP verb.
var Methods = []Method{
	MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch,
	MethodHead, MethodOptions, MethodTrace, MethodConnect,
}

// String returns the verb in upper case, so a Method built directly from a
// lower-case string still renders as curl expects.
func (m Method) String() string {
	return strings.ToUpper(strings.TrimSpace(string(m)))
}

// IsDefault reports whether m is absent or GET, both of which curl implies.
// The comparison ignores case.
func (m Method) IsDefault() bool {
	s := m.String()
	return s == "" || s == string(MethodGet)
}

// ParseMethod parses an HTTP verb case-insensitively. An empty string yields
// the absent method.
func ParseMethod(s string) (Method, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported HTTP method: %s", s)
}

// Option is a raw curl flag such as -v or --max-time 10.
type Option struct {
	Flag    string
	Value   *string
	Enabled bool
}

type Header struct {
	Key     string
	Value   string
	Enabled bool
}

type QueryParam struct {
	Key     string
	Value   string
	Enabled bool
}

type FormField struct {
	Key     string
	Value   string
	Enabled bool
}

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyRaw
	BodyFormData
	BodyBinary
)

func (k BodyKind) String() string {
	switch k {
	case BodyRaw:
		return "raw"
	case BodyFormData:
		return "form"
	case BodyBinary:
		return "binary"
	default:
		return "none"
	}
}

// ParseBodyKind maps a body type name back to its kind.
func ParseBodyKind(s string) (BodyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BodyNone, nil
	case "raw", "text", "json":
		return BodyRaw, nil
	case "form", "form-data", "formdata", "multipart":
		return BodyFormData, nil
	case "binary", "file":
		return BodyBinary, nil
	default:
		return BodyNone, fmt.Errorf("unknown body type: %s", s)
	}
}

// Body is the request payload. Only the field matching Kind is meaningful.
type Body struct {
	Kind BodyKind
	Raw  string
	Form []FormField
	Path string
}

func NoBody() *Body {
	return &Body{Kind: BodyNone}
}

func RawBody(content string) *Body {
	return &Body{Kind: BodyRaw, Raw: content}
}

func FormBody(fields ...FormField) *Body {
	return &Body{Kind: BodyFormData, Form: fields}
}

func BinaryBody(path string) *Body {
	return &Body{Kind: BodyBinary, Path: path}
}

// Request describes one HTTP request to be rendered as a curl command.
type Request struct {
	Name    string
	Options []Option
	Method  Method
	Headers []Header
	Query   []QueryParam
	Body    *Body
	URL     string
}

func NewRequest(method Method, url string) *Request {
	return &Request{
		Method: method,
		URL:    url,
	}
}

func (r *Request) AddOption(flag string, value ...string) *Request {
	opt := Option{Flag: flag, Enabled: true}
	if len(value) > 0 {
		v := value[0]
		opt.Value = &v
	}
	r.Options = append(r.Options, opt)
	return r
}

func (r *Request) AddHeader(key, value string) *Request {
	r.Headers = append(r.Headers, Header{Key: key, Value: value, Enabled: true})
	return r
}

func (r *Request) AddQueryParam(key, value string) *Request {
	r.Query = append(r.Query, QueryParam{Key: key, Value: value, Enabled: true})
	return r
}

func (r *Request) SetBody(body *Body) *Request {
	r.Body = body
	return r
}

// HasEnabledQuery reports whether at least one query parameter is enabled.
func (r *Request) HasEnabledQuery() bool {
	for _, p := range r.Query {
		if p.Enabled {
			return true
		}
	}
	return false
}
