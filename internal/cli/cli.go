// Package cli implements the wikigraph command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/pkg/buildinfo"
	"github.com/matzehuels/wikigraph/pkg/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "wikigraph",
		Short:        "Wikigraph explores the link graph of a wiki dump",
		Long:         `Wikigraph loads a preprocessed wiki article link graph and answers questions about it: shortest link paths between articles and link distribution statistics.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/wikigraph/config.toml)")

	root.AddCommand(c.pathCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig replaces c.Config with the file given by --config, or the
// default location when the flag is empty. A missing default file is fine.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			c.Logger.Debug("no config location", "err", err)
			return nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("config loaded", "path", path)
	c.Config = cfg
	return nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, buildinfo.String())
		},
	}
}
