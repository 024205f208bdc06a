// Package cmd provides the CLI command for gitprompt.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/gitprompt/internal/adapters/git"
	"github.com/xvierd/gitprompt/internal/adapters/render"
	"github.com/xvierd/gitprompt/internal/config"
	"github.com/xvierd/gitprompt/internal/domain"
	"github.com/xvierd/gitprompt/internal/logging"
	"github.com/xvierd/gitprompt/internal/services"
	"github.com/xvierd/gitprompt/internal/version"
)

var (
	// Global dependencies
	appConfig     *config.Config
	promptService *services.PromptService
	logCloser     io.Closer

	// workingDir is the directory to inspect; empty means the process
	// working directory.
	workingDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitprompt",
	Short: "gitprompt - git status for your shell prompt",
	Long: `gitprompt prints a one-line summary of the git repository enclosing the
current directory: branch, ahead/behind counts against the upstream, and
staged | unstaged additions, edits and removals.

Outside a repository it prints nothing. Embed it in your prompt, e.g.

  PS1='\w $(gitprompt) \$ '`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd.OutOrStdout())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runPrompt,
}

// Execute runs the root command. Errors go to stderr with exit status 1;
// stdout only ever carries the prompt segment.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = cleanupServices()
		os.Exit(1)
	}
}

func init() {
	// Set version - cobra handles --version automatically
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Info() + "\n")
}

// initializeServices sets up configuration, logging and the prompt service.
func initializeServices(out io.Writer) error {
	configPath, err := config.GetConfigPath()
	if err == nil {
		appConfig, err = config.Load(configPath)
	}
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	logCloser, err = logging.Initialize(logging.Options{
		Debug:    appConfig.Log.Debug,
		File:     appConfig.Log.File,
		MaxFiles: appConfig.Log.MaxFiles,
	})
	if err != nil {
		return domain.Wrap("Unable to initialize logging", err)
	}

	colorMode, err := appConfig.ColorMode()
	if err != nil {
		logging.Logger.Warn("invalid color mode, using default", "error", err)
		colorMode = domain.ColorAlways
	}

	promptService = services.NewPromptService(
		git.NewLocator(),
		render.New(colorMode, out),
	)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if logCloser != nil {
		err := logCloser.Close()
		logCloser = nil
		return err
	}
	return nil
}

// runPrompt prints the prompt segment, or nothing outside a repository.
func runPrompt(cmd *cobra.Command, args []string) error {
	err := promptService.Render(cmd.Context(), workingDir, cmd.OutOrStdout())
	if errors.Is(err, domain.ErrNotRepository) {
		return nil
	}
	return err
}
