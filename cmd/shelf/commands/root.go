// Package commands implements the CLI commands for shelf.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/shelf/internal/app"
	"go.trai.ch/shelf/internal/build"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/cleanup"
)

// CLI represents the command line interface for shelf.
type CLI struct {
	app     Application
	logs    LogConfigurer
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Load(ctx context.Context, opts app.LoadOptions) (*domain.LoadResult, error)
	Resolve(ctx context.Context, opts app.ResolveOptions) ([]domain.ResolvedLibrary, error)
	CacheList(ctx context.Context) ([]domain.CacheEntryInfo, error)
	CacheClear(ctx context.Context, opts app.ClearOptions) (int, error)
	CacheSweep(ctx context.Context) (cleanup.Report, error)
	CacheGC(ctx context.Context) error
	CacheStats(ctx context.Context, w io.Writer) error
}

// LogConfigurer is implemented by loggers whose format can be switched from flags.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetQuiet(enable bool)
}

// Option configures the CLI.
type Option func(*CLI)

// WithLogConfigurer lets the global flags reconfigure the application logger.
func WithLogConfigurer(l LogConfigurer) Option {
	return func(c *CLI) {
		c.logs = l
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "shelf",
		Short:         "Resolve, retrieve and cache versioned pipeline libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		quiet, _ := cmd.Flags().GetBool("quiet")
		c.logs.SetJSON(jsonLogs)
		c.logs.SetQuiet(quiet)
	}

	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
