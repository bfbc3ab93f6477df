package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["url"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "method": {
      "type": "string",
      "pattern": "(?i)^(get|post|put|delete|patch|head|options|trace|connect)?$"
    },
    "url": {"type": "string"},
    "options": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["flag"],
        "additionalProperties": false,
        "properties": {
          "flag": {"type": "string", "minLength": 1},
          "value": {"$ref": "#/definitions/scalar"},
          "disabled": {"type": "boolean"}
        }
      }
    },
    "headers": {"$ref": "#/definitions/pairs"},
    "query": {"$ref": "#/definitions/pairs"},
    "body": {
      "type": "object",
      "required": ["type"],
      "additionalProperties": false,
      "properties": {
        "type": {
          "enum": ["none", "raw", "text", "json", "form", "form-data", "formdata", "multipart", "binary", "file"]
        },
        "content": {"type": "string"},
        "form": {"$ref": "#/definitions/pairs"},
        "path": {"type": "string"}
      }
    }
  },
  "definitions": {
    "scalar": {"type": ["string", "number", "boolean", "null"]},
    "pairs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "additionalProperties": false,
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "value": {"$ref": "#/definitions/scalar"},
          "disabled": {"type": "boolean"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// Validate checks a YAML request document against the request schema and
// then converts it, so semantic errors such as unknown methods are caught
// as well.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	actualJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert document: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(actualJSON))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &ValidationError{Problems: problems}
	}

	f, err := ParseRequest(data)
	if err != nil {
		return err
	}
	_, err = f.ToModel()
	return err
}

// ValidateFile validates the request file at path.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return Validate(data)
}
