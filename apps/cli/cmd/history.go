package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/curlspec/packages/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously rendered commands",
	Long: `Show commands rendered by "curlspec build", most recent first.

History is recorded only when historyFile is set in the config file
(or CURLSPEC_HISTORYFILE).

Examples:
  curlspec history
  curlspec history --limit 5
  curlspec history show <id>
  curlspec history clear`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  historyShowCommand,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE:  historyClearCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", getEnvInt("CURLSPEC_HISTORY_LIMIT", 20), "Number of entries to show, 0 for all (env: CURLSPEC_HISTORY_LIMIT)")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.HistoryFile == "" {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("history is disabled: set historyFile in the config file"))
	}
	return history.Open(cfg.HistoryFile)
}

func historyCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history yet")
		return nil
	}

	if noColorFlag {
		color.NoColor = true
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = e.Source
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s", cyan(e.CreatedAt.Local().Format("2006-01-02 15:04:05")), bold(name))
		if e.Environment != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " [%s]", e.Environment)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n  %s\n", e.ID, e.Command)
	}
	return nil
}

func historyShowCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	if e.Name != "" {
		fmt.Fprintf(w, "Request:     %s\n", e.Name)
	}
	fmt.Fprintf(w, "File:        %s\n", e.Source)
	if e.Environment != "" {
		fmt.Fprintf(w, "Environment: %s\n", e.Environment)
	}
	fmt.Fprintf(w, "Created:     %s\n\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, e.Command)
	return nil
}

func historyClearCommand(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
	return nil
}
