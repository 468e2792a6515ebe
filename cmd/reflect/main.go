// Command reflect is the operator CLI. It runs interactive chat sessions
// against the configured pipeline and prints stored conversations. It also
// applies database migrations and lists audit events kept in postgres.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reflect-backend/internal/app"
	"github.com/heartmarshall/reflect-backend/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cliOptions are the persistent flags shared by every subcommand.
type cliOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "reflect",
		Short:         "ReflectAI operator CLI",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to config.yaml (defaults to $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newChatCmd(opts),
		newHistoryCmd(opts),
		newMigrateCmd(opts),
		newAuditCmd(opts),
	)
	return root
}

func (o *cliOptions) load() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// build loads config and wires the components, logging to the command's stderr.
func (o *cliOptions) build(cmd *cobra.Command) (*app.Components, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	logger := app.NewLoggerTo(cmd.ErrOrStderr(), cfg.Log)
	return app.Build(cmd.Context(), cfg, logger)
}
