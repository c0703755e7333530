// Package cli implements the anydialect operator command line.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/anydialect-backend/internal/app"
	"github.com/heartmarshall/anydialect-backend/internal/config"
)

// Flags holds the values of the persistent flags.
type Flags struct {
	ConfigPath string
	Verbose    bool
}

// CreateRootCommand builds the anydialect command tree.
func CreateRootCommand() *cobra.Command {
	flags := &Flags{}

	rootCmd := &cobra.Command{
		Use:   "anydialect",
		Short: "Formality-aware translation from the command line",
		Long: `anydialect runs the translation pipeline locally against the configured
completion provider and inspects the audit trail.

Configuration is read from --config (or CONFIG_PATH) and the environment,
exactly like the HTTP server.

Examples:
  anydialect translate --to ja --formality superior "Hello, how are you?"
  anydialect audit tail --uid u-42 --limit 5
  anydialect token --uid u-42 --email someone@example.com`,
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "config file (default is $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "log pipeline activity to stderr")

	rootCmd.AddCommand(
		newTranslateCommand(flags),
		newAuditCommand(flags),
		newTokenCommand(flags),
	)

	return rootCmd
}

// loadConfig reads configuration the way the server does. An explicit
// --config path takes precedence over CONFIG_PATH.
func (f *Flags) loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	if f.ConfigPath != "" {
		return config.LoadFrom(f.ConfigPath, overrides...)
	}
	return config.Load(overrides...)
}

// logger discards pipeline logs unless --verbose is set so that stdout
// carries only command output.
func (f *Flags) logger(cmd *cobra.Command) *slog.Logger {
	if !f.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})).
		With(slog.String("app", "anydialect-cli"))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
