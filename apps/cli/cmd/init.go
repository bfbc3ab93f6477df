package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/curlspec/packages/core/config"
	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/abdul-hamid-achik/curlspec/packages/storage"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new curlspec project",
	Long: `Initialize a new curlspec project in the current directory.

This creates:
  - .curlspec.yaml            - Configuration file
  - environments/dev.yaml     - Example environment
  - requests/example.yaml     - Example request

Examples:
  curlspec init
  curlspec init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return initProject(cmd, cwd, forceInit)
}

func initProject(cmd *cobra.Command, dir string, force bool) error {
	cfg := config.DefaultConfig().Merge(&config.Config{
		HistoryFile: filepath.Join(".curlspec", "history.db"),
	})

	configFile := filepath.Join(dir, ".curlspec.yaml")
	// Re-initializing keeps the settings of an existing config file.
	if force && fileExists(configFile) {
		existing, err := config.LoadConfig(configFile)
		if err != nil {
			return withExitCode(ExitConfigError, err)
		}
		cfg = cfg.Merge(existing)
	}

	envFile := filepath.Join(dir, cfg.EnvironmentsDir, cfg.DefaultEnvironment+".yaml")
	exampleFile := filepath.Join(dir, cfg.RequestsDir, "example.yaml")

	if !force {
		for _, f := range []string{configFile, envFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	dev := model.NewEnvironment(cfg.DefaultEnvironment)
	dev.AddVariable("baseUrl", "http://localhost:3000", false)
	dev.AddVariable("token", "dev-token", true)
	if err := storage.SaveEnvironment(dev, envFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", envFile)

	example := model.NewRequest(model.MethodPost, "{{baseUrl}}/resources")
	example.Name = "Create a resource"
	example.AddOption("-s").
		AddOption("--max-time", "{{timeout:30}}").
		AddHeader("Content-Type", "application/json").
		AddHeader("Authorization", "Bearer {{token}}").
		AddQueryParam("notify", "{{notify:false}}").
		SetBody(model.RawBody("{\n  \"name\": \"Test Resource\",\n  \"description\": \"Created by curlspec\"\n}\n"))
	if _, err := storage.SaveRequest(example, exampleFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nRender the example with:\n  curlspec build example\n")
	return nil
}
