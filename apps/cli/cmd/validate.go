package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/curlspec/packages/storage"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|directory]...",
	Short: "Validate request files",
	Long: `Validate request files against the request schema without rendering them.
With no arguments the configured requests directory is checked.

Examples:
  curlspec validate
  curlspec validate requests/users.yaml
  curlspec validate ./requests/`,
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		args = []string{cfg.RequestsDir}
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no request files found"))
	}

	var errs *multierror.Error
	for _, file := range files {
		if err := storage.ValidateFile(file); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", file, err))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if errs.ErrorOrNil() != nil {
		return withExitCode(ExitParseError, fmt.Errorf("validation failed: %d of %d files invalid", len(errs.Errors), len(files)))
	}

	return nil
}
