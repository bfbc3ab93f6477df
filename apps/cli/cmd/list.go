package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/abdul-hamid-achik/curlspec/packages/storage"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "List saved requests",
	Long: `List the request files in a directory, by default the configured
requests directory.

Examples:
  curlspec list
  curlspec list ./api/requests`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.RequestsDir
	if len(args) > 0 {
		dir = args[0]
	}

	loaded, err := storage.LoadRequests(dir)
	if err != nil {
		if merr, ok := err.(*multierror.Error); ok {
			for _, e := range merr.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing %v\n", e)
			}
		} else {
			return err
		}
	}

	if len(loaded) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No requests found in %s\n", dir)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", dir)
	for _, l := range loaded {
		rel, relErr := filepath.Rel(dir, l.Path)
		if relErr != nil {
			rel = l.Path
		}
		method := l.Request.Method.String()
		if method == "" {
			method = "GET"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", l.Request.Name, rel)
		fmt.Fprintf(cmd.OutOrStdout(), "    %s %s\n", method, l.Request.URL)
	}

	return nil
}
