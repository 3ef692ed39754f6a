// Package commands implements the CLI commands for modsync.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/modsync/internal/adapters/logger"
	"go.trai.ch/modsync/internal/app"
	"go.trai.ch/modsync/internal/build"
	"go.trai.ch/modsync/internal/core/ports"
	"golang.org/x/term"
)

// CLI represents the command line interface for modsync.
type CLI struct {
	app     *app.App
	log     ports.Logger
	rootCmd *cobra.Command
	plain   bool
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "modsync",
		Short:         "Declarative mod manager for Minecraft profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		log:     log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&c.plain, "plain", false, "Log progress as plain lines instead of the interactive view")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.plain || !term.IsTerminal(int(os.Stderr.Fd())) { //nolint:gosec // Fd fits in int
			c.app.WithRenderer(logger.NewRenderer(c.log))
		}
	}

	rootCmd.AddCommand(c.newApplyCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newRevertCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newPinCmd())
	rootCmd.AddCommand(c.newExcludeCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newModpackCmd())
	rootCmd.AddCommand(c.newProfileCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
