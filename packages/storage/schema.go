package storage

// RequestFile is the on-disk form of a request.
type RequestFile struct {
	Name    string        `yaml:"name,omitempty" json:"name,omitempty"`
	Method  string        `yaml:"method,omitempty" json:"method,omitempty"`
	URL     string        `yaml:"url" json:"url"`
	Options []OptionEntry `yaml:"options,omitempty" json:"options,omitempty"`
	Headers []Pair        `yaml:"headers,omitempty" json:"headers,omitempty"`
	Query   []Pair        `yaml:"query,omitempty" json:"query,omitempty"`
	Body    *BodyEntry    `yaml:"body,omitempty" json:"body,omitempty"`
}

// OptionEntry is a curl flag with an optional value.
type OptionEntry struct {
	Flag     string  `yaml:"flag" json:"flag"`
	Value    *string `yaml:"value,omitempty" json:"value,omitempty"`
	Disabled bool    `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Pair is a header, query parameter or form field.
type Pair struct {
	Key      string `yaml:"key" json:"key"`
	Value    string `yaml:"value" json:"value"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// BodyEntry holds one body variant; Type selects which field is used.
type BodyEntry struct {
	Type    string `yaml:"type" json:"type"`
	Content string `yaml:"content,omitempty" json:"content,omitempty"`
	Form    []Pair `yaml:"form,omitempty" json:"form,omitempty"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// EnvironmentFile is the on-disk form of an environment.
type EnvironmentFile struct {
	Name      string          `yaml:"name,omitempty"`
	Variables []VariableEntry `yaml:"variables"`
}

type VariableEntry struct {
	Key    string `yaml:"key"`
	Value  string `yaml:"value"`
	Secret bool   `yaml:"secret,omitempty"`
}
