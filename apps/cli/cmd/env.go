package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/curlspec/packages/command"
	"github.com/abdul-hamid-achik/curlspec/packages/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var revealFlag bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect environments",
	Long: `Inspect the environment files in the environments directory.

Examples:
  curlspec env list
  curlspec env show staging`,
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environments",
	Args:  cobra.NoArgs,
	RunE:  envListCommand,
}

var envShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the variables of an environment",
	Long: `Show the variables of an environment. Secret values are masked unless
--reveal is given.`,
	Args: cobra.ExactArgs(1),
	RunE: envShowCommand,
}

func init() {
	envShowCmd.Flags().BoolVar(&revealFlag, "reveal", false, "Print secret values in clear text")

	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envShowCmd)
}

func envListCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names, err := storage.ListEnvironments(cfg.EnvironmentsDir)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No environments found in %s\n", cfg.EnvironmentsDir)
		return nil
	}

	for _, name := range names {
		marker := " "
		if name == cfg.DefaultEnvironment {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
	}
	return nil
}

func envShowCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	environment, err := storage.FindEnvironment(cfg.EnvironmentsDir, args[0])
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	if noColorFlag || cfg.GetNoColor() {
		color.NoColor = true
	}
	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	masker := command.NewMasker()
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bold(environment.Name))
	for _, v := range environment.Variables {
		value := v.Value
		suffix := ""
		if v.Secret {
			suffix = " " + yellow("(secret)")
			if !revealFlag {
				value = masker.MaskValue(value)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s%s\n", v.Key, value, suffix)
	}
	return nil
}
