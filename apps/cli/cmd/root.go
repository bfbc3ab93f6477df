package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/curlspec/packages/logging"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	verboseFlag int // 0=off, 1=-v (debug), 2=-vv (trace)
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "curlspec",
	Short: "Stored requests in, shell-safe curl commands out.",
	Long: `curlspec renders request files written in YAML into curl command lines.
Placeholders like {{baseUrl}} or {{token:dev-token}} are filled in from an
environment file, a .env file, prefixed OS variables and --set overrides.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(logging.Level(verboseFlag))
		logging.SetNoColor(noColorFlag)
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("CURLSPEC_CONFIG", ""), "Path to config file (env: CURLSPEC_CONFIG)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("CURLSPEC_NO_COLOR", false), "Disable colored output (env: CURLSPEC_NO_COLOR)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
