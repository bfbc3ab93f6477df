package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// IsRequestFile reports whether path has a request file extension.
func IsRequestFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func ensureYAMLExt(path string) string {
	if !IsRequestFile(path) {
		return path + ".yaml"
	}
	return path
}

// ParseRequest decodes a YAML request document. Unknown fields are errors.
func ParseRequest(data []byte) (*RequestFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f RequestFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}

// LoadRequest loads a request from a YAML file. A request without a name is
// named after its file.
func LoadRequest(filePath string) (*model.Request, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := ParseRequest(data)
	if err != nil {
		return nil, err
	}

	req, err := f.ToModel()
	if err != nil {
		return nil, fmt.Errorf("invalid request %s: %w", filePath, err)
	}
	if req.Name == "" {
		base := filepath.Base(filePath)
		req.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return req, nil
}

// SaveRequest saves a request to a YAML file and returns the path written.
func SaveRequest(req *model.Request, filePath string) (string, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filePath = ensureYAMLExt(filePath)

	data, err := yaml.Marshal(NewRequestFile(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// ListRequests lists request files under dir, relative to dir, sorted.
func ListRequests(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsRequestFile(path) {
			relPath, _ := filepath.Rel(dir, path)
			files = append(files, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// LoadedRequest pairs a request with the file it came from.
type LoadedRequest struct {
	Path    string
	Request *model.Request
}

// LoadRequests loads every request file under dir. Files that fail to load
// are skipped and their errors returned together.
func LoadRequests(dir string) ([]LoadedRequest, error) {
	files, err := ListRequests(dir)
	if err != nil {
		return nil, err
	}

	var result []LoadedRequest
	var errs *multierror.Error
	for _, rel := range files {
		path := filepath.Join(dir, rel)
		req, err := LoadRequest(path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		result = append(result, LoadedRequest{Path: path, Request: req})
	}

	return result, errs.ErrorOrNil()
}

// ResolveRequestPath finds a request by path or by name inside dir.
func ResolveRequestPath(dir, nameOrPath string) (string, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return nameOrPath, nil
	}

	candidates := []string{
		filepath.Join(dir, nameOrPath),
		filepath.Join(dir, nameOrPath+".yaml"),
		filepath.Join(dir, nameOrPath+".yml"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("request not found: %s", nameOrPath)
}
