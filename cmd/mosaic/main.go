package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/robby/mosaic/internal/auth"
	"github.com/robby/mosaic/internal/config"
	"github.com/robby/mosaic/internal/gh"
	"github.com/spf13/cobra"
)

// app holds the state shared by all subcommands.
type app struct {
	// CLI flags
	configPath string
	token      string
	verbose    bool
	jsonOut    bool
	retries    int
	apiURL     string
	graphqlURL string

	out    io.Writer
	errOut io.Writer
	cfg    config.Config
	logger *log.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "mosaic",
		Short: "GitHub data for mosaic project pages",
		Long: `mosaic fetches the GitHub data behind project pages: user activity,
repository metadata, language breakdowns and repository files.

Authentication:
  1. Pass --token
  2. Environment variable: Set MOSAIC_GITHUB_TOKEN or GITHUB_TOKEN
  3. GitHub CLI: Run 'gh auth login'`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath(), "Path to the TOML config file.")
	flags.StringVar(&a.token, "token", "", "GitHub token. Defaults to the environment or the GitHub CLI.")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging.")
	flags.BoolVar(&a.jsonOut, "json", false, "Print results as JSON.")
	flags.IntVar(&a.retries, "retries", 2, "Retry requests that fail to reach GitHub this many times.")
	flags.StringVar(&a.apiURL, "api-url", "", "Override the GitHub REST base URL.")
	flags.StringVar(&a.graphqlURL, "graphql-url", "", "Override the GitHub GraphQL endpoint.")

	rootCmd.AddCommand(
		a.newEventsCmd(),
		a.newLanguagesCmd(),
		a.newContentCmd(),
		a.newProfileCmd(),
		a.newRepoCmd(),
		a.newInspectCmd(),
		a.newServeCmd(),
		a.newProjectsCmd(),
	)
	return rootCmd
}

// setup resolves config and logging before any subcommand runs.
// Flags win over the file and environment.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = newLogger(a.errOut, level)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.GitHub.APIURL = a.apiURL
	}
	if a.graphqlURL != "" {
		cfg.GitHub.GraphQLURL = a.graphqlURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if a.retries < 0 {
		return errors.New("--retries must not be negative")
	}
	a.cfg = cfg

	a.logger.Debug("Loaded config", "api", cfg.GitHub.APIURL, "graphql", cfg.GitHub.GraphQLURL)
	return nil
}

// defaultConfigPath returns ~/.config/mosaic/config.toml or its platform
// equivalent, or "" when there is no user config directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mosaic", "config.toml")
}

// newLogger creates a timestamped logger writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// client creates a GitHub client, resolving the token on first use.
func (a *app) client() (*gh.Client, error) {
	token, err := auth.GetToken(a.token)
	if err != nil {
		return nil, err
	}

	client, err := gh.New(token, gh.WithConfig(a.cfg.GitHub), gh.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

// splitRepo parses an "owner/name" argument.
func splitRepo(arg string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", arg)
	}
	return owner, name, nil
}
