package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/abdul-hamid-achik/curlspec/packages/import/insomnia"
	"github.com/abdul-hamid-achik/curlspec/packages/import/openapi"
	"github.com/abdul-hamid-achik/curlspec/packages/import/postman"
	"github.com/abdul-hamid-achik/curlspec/packages/logging"
	"github.com/abdul-hamid-achik/curlspec/packages/storage"
	"github.com/spf13/cobra"
)

var (
	importOutputFlag     string
	importForceFlag      bool
	importNoDisabledFlag bool
	importBaseURLFlag    string
	importTagsFlag       string
)

var importCmd = &cobra.Command{
	Use:   "import <format> <source>",
	Short: "Import requests from other API clients",
	Long: `Import requests from other API clients and save them as request files.

Supported formats:
  insomnia - Insomnia export (v4 JSON)
  postman  - Postman Collection v2.1
  openapi  - OpenAPI 3.0/3.1 (YAML or JSON, file or URL)

Examples:
  curlspec import insomnia export.json
  curlspec import postman collection.json -o requests/petstore
  curlspec import openapi spec.yaml --tags users,auth`,
}

var importInsomniaCmd = &cobra.Command{
	Use:   "insomnia <export-file>",
	Short: "Import from an Insomnia export",
	Long: `Import requests and environments from an Insomnia export file.

Requests are written to the requests directory (or --output), one file per
request, keeping the folder structure. Environments are written to the
environments directory; keys that look like credentials are marked secret.`,
	Args: cobra.ExactArgs(1),
	RunE: importInsomniaCommand,
}

var importPostmanCmd = &cobra.Command{
	Use:   "postman <collection-file>",
	Short: "Import from a Postman collection",
	Long: `Import requests from a Postman Collection v2.1 file.

Collection variables are saved as an environment named after the collection.`,
	Args: cobra.ExactArgs(1),
	RunE: importPostmanCommand,
}

var importOpenAPICmd = &cobra.Command{
	Use:   "openapi <spec-file-or-url>",
	Short: "Import from an OpenAPI specification",
	Long: `Import one request per operation from an OpenAPI 3.0/3.1 specification.

URLs start with {{baseUrl}}; the server URL from the spec (or --base-url) is
saved as an environment named after the spec title. Path parameters become
placeholders. Optional query and header parameters are kept but disabled.

Examples:
  curlspec import openapi spec.yaml
  curlspec import openapi https://api.example.com/openapi.json
  curlspec import openapi spec.yaml --tags users,auth
  curlspec import openapi spec.yaml --base-url http://localhost:3000`,
	Args: cobra.ExactArgs(1),
	RunE: importOpenAPICommand,
}

func init() {
	importCmd.PersistentFlags().StringVarP(&importOutputFlag, "output", "o", "", "Output directory (default: configured requests directory)")
	importCmd.PersistentFlags().BoolVarP(&importForceFlag, "force", "f", false, "Overwrite existing files")
	importCmd.PersistentFlags().BoolVar(&importNoDisabledFlag, "no-disabled", false, "Drop disabled headers, parameters and fields")

	importOpenAPICmd.Flags().StringVar(&importBaseURLFlag, "base-url", "", "Override base URL from spec")
	importOpenAPICmd.Flags().StringVar(&importTagsFlag, "tags", "", "Filter operations by tags (comma-separated)")

	importCmd.AddCommand(importInsomniaCmd)
	importCmd.AddCommand(importPostmanCmd)
	importCmd.AddCommand(importOpenAPICmd)
}

// importedRequest is a converted request and the folder it belongs in.
type importedRequest struct {
	Folder  string
	Request *model.Request
}

func importInsomniaCommand(cmd *cobra.Command, args []string) error {
	converter := insomnia.NewConverter(insomnia.WithDisabled(!importNoDisabledFlag))

	result, err := converter.ConvertFile(args[0])
	if err != nil {
		return withExitCode(ExitParseError, fmt.Errorf("failed to convert Insomnia export: %w", err))
	}

	items := make([]importedRequest, len(result.Items))
	for i, item := range result.Items {
		items[i] = importedRequest{Folder: item.Folder, Request: item.Request}
	}

	return saveImport(cmd, items, result.Environments, insomnia.SanitizeName)
}

func importPostmanCommand(cmd *cobra.Command, args []string) error {
	converter := postman.NewConverter(postman.WithDisabled(!importNoDisabledFlag))

	result, err := converter.ConvertFile(args[0])
	if err != nil {
		return withExitCode(ExitParseError, fmt.Errorf("failed to convert Postman collection: %w", err))
	}

	items := make([]importedRequest, len(result.Items))
	for i, item := range result.Items {
		items[i] = importedRequest{Folder: item.Folder, Request: item.Request}
	}

	var envs []*model.Environment
	if result.Variables != nil {
		envs = append(envs, result.Variables)
	}

	return saveImport(cmd, items, envs, postman.SanitizeName)
}

func importOpenAPICommand(cmd *cobra.Command, args []string) error {
	var opts []openapi.Option

	if importBaseURLFlag != "" {
		opts = append(opts, openapi.WithBaseURL(importBaseURLFlag))
	}

	if importTagsFlag != "" {
		tags := strings.Split(importTagsFlag, ",")
		for i := range tags {
			tags[i] = strings.TrimSpace(tags[i])
		}
		opts = append(opts, openapi.WithTags(tags))
	}

	result, err := openapi.NewConverter(opts...).ConvertFile(args[0])
	if err != nil {
		return withExitCode(ExitParseError, fmt.Errorf("failed to convert OpenAPI spec: %w", err))
	}

	items := make([]importedRequest, len(result.Items))
	for i, item := range result.Items {
		items[i] = importedRequest{Folder: item.Folder, Request: item.Request}
	}

	return saveImport(cmd, items, []*model.Environment{result.Environment}, openapi.SanitizeName)
}

func saveImport(cmd *cobra.Command, items []importedRequest, envs []*model.Environment, sanitize func(string) string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outDir := importOutputFlag
	if outDir == "" {
		outDir = cfg.RequestsDir
	}

	used := make(map[string]bool)
	saved := 0
	for _, item := range items {
		base := sanitize(item.Request.Name)
		if base == "" {
			base = "request"
		}
		path := uniquePath(used, filepath.Join(outDir, item.Folder, base), ".yaml")

		if !importForceFlag && fileExists(path) {
			logging.GetLogger().Warnf("skipping %s: file already exists (use --force to overwrite)", path)
			continue
		}

		written, err := storage.SaveRequest(item.Request, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", written)
		saved++
	}

	for _, e := range envs {
		name := sanitize(e.Name)
		if name == "" {
			name = "imported"
		}
		e.Name = name
		path := filepath.Join(cfg.EnvironmentsDir, name+".yaml")

		if !importForceFlag && fileExists(path) {
			logging.GetLogger().Warnf("skipping %s: file already exists (use --force to overwrite)", path)
			continue
		}

		if err := storage.SaveEnvironment(e, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d requests into %s\n", saved, len(items), outDir)
	return nil
}

// uniquePath appends a numeric suffix until base+ext is not yet taken by
// this import.
func uniquePath(used map[string]bool, base, ext string) string {
	path := base + ext
	for i := 2; used[path]; i++ {
		path = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
	used[path] = true
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
