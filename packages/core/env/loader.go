package env

import (
	"os"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
)

// Sources lists where variables are gathered from. Later sources take
// precedence: environment file, then .env file, then prefixed system
// variables, then explicit overrides.
type Sources struct {
	Environment  *model.Environment
	DotEnvFile   string
	SystemPrefix string
	Overrides    model.Variables
}

func Load(src Sources) (model.Variables, error) {
	layers := []model.Variables{src.Environment.Set()}

	if src.DotEnvFile != "" {
		dotenv, err := LoadDotEnv(src.DotEnvFile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, dotenv)
	}

	if src.SystemPrefix != "" {
		layers = append(layers, LoadSystemEnv(src.SystemPrefix))
	}

	layers = append(layers, src.Overrides)
	return model.Merge(layers...), nil
}

// LoadSystemEnv returns OS environment variables whose name starts with
// prefix, keyed by the name with the prefix removed. An empty prefix
// returns the whole environment.
func LoadSystemEnv(prefix string) model.Variables {
	result := make(model.Variables)
	for _, e := range os.Environ() {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result[key[len(prefix):]] = value
		}
	}
	return result
}

// ParseAssignments parses KEY=VALUE pairs such as those given with --set.
// Entries without '=' map the key to an empty value.
func ParseAssignments(pairs []string) model.Variables {
	result := make(model.Variables, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = value
	}
	return result
}
