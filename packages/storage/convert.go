package storage

import (
	"fmt"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
)

// ToModel converts a request file into a model request.
func (f *RequestFile) ToModel() (*model.Request, error) {
	method, err := model.ParseMethod(f.Method)
	if err != nil {
		return nil, err
	}

	req := &model.Request{
		Name:   f.Name,
		Method: method,
		URL:    f.URL,
	}

	for _, o := range f.Options {
		if o.Flag == "" {
			return nil, fmt.Errorf("option without flag")
		}
		opt := model.Option{Flag: o.Flag, Enabled: !o.Disabled}
		if o.Value != nil {
			v := *o.Value
			opt.Value = &v
		}
		req.Options = append(req.Options, opt)
	}

	for _, h := range f.Headers {
		req.Headers = append(req.Headers, model.Header{Key: h.Key, Value: h.Value, Enabled: !h.Disabled})
	}

	for _, q := range f.Query {
		req.Query = append(req.Query, model.QueryParam{Key: q.Key, Value: q.Value, Enabled: !q.Disabled})
	}

	if f.Body != nil {
		body, err := f.Body.toModel()
		if err != nil {
			return nil, err
		}
		req.Body = body
	}

	return req, nil
}

func (b *BodyEntry) toModel() (*model.Body, error) {
	kind, err := model.ParseBodyKind(b.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case model.BodyRaw:
		return model.RawBody(b.Content), nil
	case model.BodyFormData:
		fields := make([]model.FormField, 0, len(b.Form))
		for _, p := range b.Form {
			fields = append(fields, model.FormField{Key: p.Key, Value: p.Value, Enabled: !p.Disabled})
		}
		return model.FormBody(fields...), nil
	case model.BodyBinary:
		if b.Path == "" {
			return nil, fmt.Errorf("binary body requires a path")
		}
		return model.BinaryBody(b.Path), nil
	default:
		return model.NoBody(), nil
	}
}

// NewRequestFile converts a model request into its on-disk form.
func NewRequestFile(req *model.Request) *RequestFile {
	f := &RequestFile{
		Name:   req.Name,
		Method: req.Method.String(),
		URL:    req.URL,
	}

	for _, o := range req.Options {
		entry := OptionEntry{Flag: o.Flag, Disabled: !o.Enabled}
		if o.Value != nil {
			v := *o.Value
			entry.Value = &v
		}
		f.Options = append(f.Options, entry)
	}
	for _, h := range req.Headers {
		f.Headers = append(f.Headers, Pair{Key: h.Key, Value: h.Value, Disabled: !h.Enabled})
	}
	for _, q := range req.Query {
		f.Query = append(f.Query, Pair{Key: q.Key, Value: q.Value, Disabled: !q.Enabled})
	}

	if req.Body != nil && req.Body.Kind != model.BodyNone {
		entry := &BodyEntry{Type: req.Body.Kind.String()}
		switch req.Body.Kind {
		case model.BodyRaw:
			entry.Content = req.Body.Raw
		case model.BodyFormData:
			for _, ff := range req.Body.Form {
				entry.Form = append(entry.Form, Pair{Key: ff.Key, Value: ff.Value, Disabled: !ff.Enabled})
			}
		case model.BodyBinary:
			entry.Path = req.Body.Path
		}
		f.Body = entry
	}

	return f
}

// ToModel converts an environment file into a model environment.
func (f *EnvironmentFile) ToModel() *model.Environment {
	env := model.NewEnvironment(f.Name)
	for _, v := range f.Variables {
		env.AddVariable(v.Key, v.Value, v.Secret)
	}
	return env
}

func NewEnvironmentFile(env *model.Environment) *EnvironmentFile {
	f := &EnvironmentFile{Name: env.Name}
	for _, v := range env.Variables {
		f.Variables = append(f.Variables, VariableEntry{Key: v.Key, Value: v.Value, Secret: v.Secret})
	}
	return f
}
