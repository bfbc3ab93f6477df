package model

// Variables maps variable names to values. Lookups are exact and case-sensitive.
type Variables map[string]string

// Lookup returns the value for name and whether it was set.
func (v Variables) Lookup(name string) (string, bool) {
	val, ok := v[name]
	return val, ok
}

// Merge returns a new set with the entries of each source applied in order,
// later sources overriding earlier ones.
func Merge(sources ...Variables) Variables {
	result := make(Variables)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

type Variable struct {
	Key    string
	Value  string
	Secret bool
}

// Environment is a named, ordered list of variables.
type Environment struct {
	Name      string
	Variables []Variable
}

func NewEnvironment(name string) *Environment {
	return &Environment{Name: name}
}

func (e *Environment) AddVariable(key, value string, secret bool) {
	e.Variables = append(e.Variables, Variable{Key: key, Value: value, Secret: secret})
}

// Set builds the variable set for substitution. When a key appears more than
// once the first occurrence wins.
func (e *Environment) Set() Variables {
	if e == nil {
		return make(Variables)
	}
	vars := make(Variables, len(e.Variables))
	for _, v := range e.Variables {
		if _, exists := vars[v.Key]; !exists {
			vars[v.Key] = v.Value
		}
	}
	return vars
}

// Secrets returns the values of variables flagged secret, skipping empty ones.
func (e *Environment) Secrets() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, v := range e.Variables {
		if v.Secret && v.Value != "" {
			out = append(out, v.Value)
		}
	}
	return out
}
