package env

import (
	"fmt"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/joho/godotenv"
)

// LoadDotEnv parses a .env file and returns its entries as variables.
// Supports KEY=value, quoted values, export prefixes and # comments.
// The OS environment is left untouched; see LoadAndExportDotEnv.
func LoadDotEnv(path string) (model.Variables, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file: %w", err)
	}
	return model.Variables(vars), nil
}

// LoadAndExportDotEnv parses a .env file, returns its entries, and exports
// them to the OS environment. Variables already set in the OS environment
// are not overwritten.
func LoadAndExportDotEnv(path string) (model.Variables, error) {
	vars, err := LoadDotEnv(path)
	if err != nil {
		return nil, err
	}
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("cannot export env file: %w", err)
	}
	return vars, nil
}
