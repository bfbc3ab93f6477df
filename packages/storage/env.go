package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"gopkg.in/yaml.v3"
)

// ParseEnvironment decodes an environment document. Two layouts are
// accepted: a `variables` list with optional secret flags, or a flat
// mapping of names to values. Flat mappings keep their document order.
func ParseEnvironment(data []byte, name string) (*model.Environment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return model.NewEnvironment(name), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("environment must be a mapping")
	}

	if hasKey(root, "variables") {
		var f EnvironmentFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse environment YAML: %w", err)
		}
		env := f.ToModel()
		if env.Name == "" {
			env.Name = name
		}
		return env, nil
	}

	env := model.NewEnvironment(name)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == "name" && value.Kind == yaml.ScalarNode {
			env.Name = value.Value
			continue
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("variable %s must be a scalar", key.Value)
		}
		env.AddVariable(key.Value, value.Value, false)
	}
	return env, nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// LoadEnvironment loads an environment from a YAML file. The environment is
// named after the file unless the document names it.
func LoadEnvironment(filePath string) (*model.Environment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	base := filepath.Base(filePath)
	return ParseEnvironment(data, strings.TrimSuffix(base, filepath.Ext(base)))
}

// SaveEnvironment saves an environment to a YAML file
func SaveEnvironment(env *model.Environment, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(NewEnvironmentFile(env))
	if err != nil {
		return fmt.Errorf("failed to marshal environment: %w", err)
	}

	return os.WriteFile(ensureYAMLExt(filePath), data, 0644)
}

// ListEnvironments lists the environment names found in dir.
func ListEnvironments(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments directory: %w", err)
	}

	var envs []string
	for _, entry := range entries {
		if !entry.IsDir() && IsRequestFile(entry.Name()) {
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			envs = append(envs, name)
		}
	}

	sort.Strings(envs)
	return envs, nil
}

// FindEnvironment loads the environment called name from dir.
func FindEnvironment(dir, name string) (*model.Environment, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadEnvironment(path)
		}
	}
	return nil, fmt.Errorf("environment %s does not exist in %s", name, dir)
}
