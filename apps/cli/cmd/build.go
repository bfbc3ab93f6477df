package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/curlspec/packages/builtin"
	"github.com/abdul-hamid-achik/curlspec/packages/command"
	"github.com/abdul-hamid-achik/curlspec/packages/core/config"
	"github.com/abdul-hamid-achik/curlspec/packages/core/env"
	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/abdul-hamid-achik/curlspec/packages/history"
	"github.com/abdul-hamid-achik/curlspec/packages/logging"
	"github.com/abdul-hamid-achik/curlspec/packages/output"
	"github.com/abdul-hamid-achik/curlspec/packages/storage"
	"github.com/atotto/clipboard"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <request>",
	Short: "Render a request file as a curl command",
	Long: `Render a stored request as a single shell-safe curl command.

The request may be given as a path or as a name inside the requests
directory. Variables come from the selected environment, then the
--env-file, then OS variables with the configured prefix, then --set.

Examples:
  curlspec build requests/users.yaml
  curlspec build users --env staging
  curlspec build users --set token=abc --multiline
  curlspec build users --mask-secrets --copy
  curlspec build users --output json
  curlspec build users --watch`,
	Args: cobra.ExactArgs(1),
	RunE: buildCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	envFlag         string
	envFileFlag     string
	setFlags        []string
	multilineFlag   bool
	maskSecretsFlag bool
	copyFlag        bool
	outputFlag      string
	watchFlag       bool
)

func init() {
	buildCmd.Flags().StringVarP(&envFlag, "env", "e", getEnvString("CURLSPEC_ENV", ""), "Environment to use (env: CURLSPEC_ENV)")
	buildCmd.Flags().StringVar(&envFileFlag, "env-file", getEnvString("CURLSPEC_ENV_FILE", ""), "Path to .env file for variable interpolation (env: CURLSPEC_ENV_FILE)")
	buildCmd.Flags().StringArrayVarP(&setFlags, "set", "s", nil, "Set a variable (key=value), may be repeated")
	buildCmd.Flags().BoolVarP(&multilineFlag, "multiline", "m", false, "Put each argument on its own line")
	buildCmd.Flags().BoolVar(&maskSecretsFlag, "mask-secrets", false, "Mask secret environment values in the output")
	buildCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the command to the clipboard")
	buildCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("CURLSPEC_OUTPUT", "console"), "Output format: console, plain, json (env: CURLSPEC_OUTPUT)")
	buildCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-render")
}

// buildSettings is the resolved set of inputs for one render.
type buildSettings struct {
	RequestPath  string
	Environment  string
	EnvRequired  bool
	EnvDir       string
	DotEnvFile   string
	SystemPrefix string
	Overrides    model.Variables
	Multiline    bool
	MaskSecrets  bool
}

// rendered is the outcome of a render.
type rendered struct {
	Result *output.Result
	// Raw is the command with secrets intact, for the clipboard.
	Raw string
}

func buildCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := storage.ResolveRequestPath(cfg.RequestsDir, args[0])
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	settings := newBuildSettings(cmd, cfg, path)
	noColor := noColorFlag || cfg.GetNoColor()
	doCopy := copyFlag || (!cmd.Flags().Changed("copy") && cfg.GetCopy())

	format := strings.ToLower(outputFlag)
	formatter := output.New(format, cmd.OutOrStdout(), verboseFlag > 0, noColor)

	// Outside watch mode console errors are printed once on exit.
	reportErrors := watchFlag || format == "json"

	runOnce := func() error {
		out, err := render(settings)
		if err != nil {
			if reportErrors {
				formatter.FormatError(err)
				_ = flush(formatter)
			}
			return err
		}

		formatter.FormatResult(out.Result)
		if err := flush(formatter); err != nil {
			return err
		}

		if doCopy {
			if err := clipboard.WriteAll(out.Raw); err != nil {
				logging.GetLogger().Warnf("failed to copy to clipboard: %v", err)
			} else {
				logging.GetLogger().Debug("command copied to clipboard")
			}
		}

		if cfg.HistoryFile != "" {
			recordHistory(cmd.Context(), cfg.HistoryFile, out.Result)
		}
		return nil
	}

	if err := runOnce(); err != nil && !watchFlag {
		return err
	}

	if !watchFlag {
		return nil
	}

	return watch(cmd, settings, runOnce)
}

func newBuildSettings(cmd *cobra.Command, cfg *config.Config, path string) buildSettings {
	s := buildSettings{
		RequestPath:  path,
		Environment:  cfg.DefaultEnvironment,
		EnvDir:       cfg.EnvironmentsDir,
		DotEnvFile:   envFileFlag,
		SystemPrefix: cfg.EnvPrefix,
		Overrides:    env.ParseAssignments(setFlags),
		Multiline:    cfg.GetMultiline(),
		MaskSecrets:  cfg.GetMaskSecrets(),
	}
	if envFlag != "" {
		s.Environment = envFlag
		s.EnvRequired = true
	}
	if cmd.Flags().Changed("multiline") {
		s.Multiline = multilineFlag
	}
	if cmd.Flags().Changed("mask-secrets") {
		s.MaskSecrets = maskSecretsFlag
	}
	return s
}

// render loads the request and its variables and produces the command.
func render(s buildSettings) (*rendered, error) {
	var environment *model.Environment
	if s.Environment != "" {
		e, err := storage.FindEnvironment(s.EnvDir, s.Environment)
		switch {
		case err == nil:
			environment = e
		case s.EnvRequired:
			return nil, withExitCode(ExitConfigError, err)
		default:
			logging.GetLogger().Debugf("default environment not loaded: %v", err)
		}
	}

	vars, err := env.Load(env.Sources{
		Environment:  environment,
		DotEnvFile:   s.DotEnvFile,
		SystemPrefix: s.SystemPrefix,
		Overrides:    s.Overrides,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	req, err := storage.LoadRequest(s.RequestPath)
	if err != nil {
		return nil, withExitCode(ExitParseError, err)
	}

	logger := logging.GetLogger()
	logger.Debugf("rendering %s with %d variables", s.RequestPath, len(vars))

	resolver := env.NewResolver(vars)
	resolver.SetWarnFunc(logging.Warnf)
	dynamic := builtin.NewRegistry()

	var unresolved []string
	seen := make(map[string]bool)
	builder := command.NewBuilder(func(input string) string {
		dynamic.Fill(vars, input)
		for _, name := range env.Unresolved(input, vars) {
			if !seen[name] {
				seen[name] = true
				unresolved = append(unresolved, name)
			}
		}
		return resolver.Resolve(input)
	})

	var cmdline string
	if s.Multiline {
		cmdline = builder.BuildMultiline(req)
	} else {
		cmdline = builder.Build(req)
	}
	tokens := builder.Tokens(req)
	url := builder.URL(req)

	result := &output.Result{
		Name:       req.Name,
		Source:     s.RequestPath,
		Command:    cmdline,
		URL:        url,
		Tokens:     tokens,
		Unresolved: unresolved,
	}
	if environment != nil {
		result.Environment = environment.Name
	}

	if s.MaskSecrets {
		secrets := environment.Secrets()
		result.Command = command.Mask(cmdline, secrets)
		result.URL = command.Mask(url, secrets)
		masked := make([]string, len(tokens))
		for i, t := range tokens {
			masked[i] = command.Mask(t, secrets)
		}
		result.Tokens = masked
		result.Masked = len(secrets) > 0
	}

	return &rendered{Result: result, Raw: cmdline}, nil
}

func flush(f output.Formatter) error {
	if flushable, ok := f.(output.Flushable); ok {
		return flushable.Flush()
	}
	return nil
}

func recordHistory(ctx context.Context, path string, result *output.Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.Open(path)
	if err != nil {
		logging.GetLogger().Warnf("history disabled: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, result.Name, result.Environment, result.Source, result.Command); err != nil {
		logging.GetLogger().Warnf("failed to record history: %v", err)
	}
}

// watchTargets returns the directories whose changes trigger a re-render.
func watchTargets(s buildSettings) []string {
	candidates := []string{filepath.Dir(s.RequestPath)}
	if s.Environment != "" {
		candidates = append(candidates, s.EnvDir)
	}
	if s.DotEnvFile != "" {
		candidates = append(candidates, filepath.Dir(s.DotEnvFile))
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, dir := range candidates {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		if seen[abs] {
			continue
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			continue
		}
		seen[abs] = true
		dirs = append(dirs, abs)
	}
	return dirs
}

// isWatchedFile reports whether a change to path can affect the output.
func isWatchedFile(path string, s buildSettings) bool {
	if storage.IsRequestFile(path) {
		return true
	}
	if s.DotEnvFile == "" {
		return false
	}
	a, errA := filepath.Abs(path)
	b, errB := filepath.Abs(s.DotEnvFile)
	return errA == nil && errB == nil && a == b
}

func watch(cmd *cobra.Command, s buildSettings, runOnce func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchTargets(s) {
		if err := watcher.Add(dir); err != nil {
			logging.GetLogger().Warnf("failed to watch %s: %v", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) || !isWatchedFile(event.Name, s) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				logging.GetLogger().Debugf("file changed: %s", name)
				_ = runOnce()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.GetLogger().Warnf("watcher error: %v", err)
		}
	}
}
