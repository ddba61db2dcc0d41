// Package cli implements the clearlydefined command-line interface.
//
// # Commands
//
//   - get: fetch definitions for one or more coordinates
//   - search: list the coordinates the service knows for a pattern
//   - parse: check coordinates locally without contacting the service
//
// # Configuration
//
// Settings come from flags, CLEARLYDEFINED_* environment variables and an
// optional TOML file given with --config, in that order of precedence.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adamwoolhether/clearlydefined/client"
)

const appName = "clearlydefined"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// The values are normally injected with ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out io.Writer
	v   *viper.Viper
	cfg *Config
}

// New creates a CLI writing command output to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
		v:      newViper(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           appName,
		Short:         "Look up license and provenance data on ClearlyDefined",
		Long:          `clearlydefined queries the ClearlyDefined definitions API for the license, source and scoring data of open source components, named by coordinates such as npm/npmjs/-/lodash/4.17.21.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}

			cfg, err := loadConfig(c.v, configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg

			c.Logger.Debug("loaded config", "base_url", cfg.BaseURL, "timeout", cfg.Timeout, "batch_size", cfg.BatchSize)
			return nil
		},
	}

	root.SetOut(c.out)
	root.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\ncommit: %s\nbuilt: %s\n", appName, commit, date))

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&configPath, "config", "", "path to a TOML config file")
	flags.String("base-url", client.DefaultBaseURL, "ClearlyDefined API base URL")
	flags.Duration("timeout", defaultTimeout, "overall timeout per HTTP request")
	flags.Int("batch-size", defaultBatchSize, "coordinates sent per request (max 1000)")
	flags.Int("concurrency", defaultConcurrency, "batches in flight at once with --async")
	flags.String("user-agent", client.DefaultUserAgent, "User-Agent header sent with every request")
	bindFlags(c.v, flags)

	root.AddCommand(c.getCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.parseCommand())

	return root
}

// newClient builds an API client from the loaded config.
func (c *CLI) newClient() (*client.Client, error) {
	cl, err := client.Build(
		client.WithBaseURL(c.cfg.BaseURL),
		client.WithTimeout(c.cfg.Timeout),
		client.WithBatchSize(c.cfg.BatchSize),
		client.WithUserAgent(c.cfg.UserAgent),
		client.WithLogger(slog.New(c.Logger)),
		client.WithRequestID(),
	)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}

	return cl, nil
}
