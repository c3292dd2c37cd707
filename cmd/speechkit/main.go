package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/config"
	"github.com/ent0n29/speechkit/internal/observability"
)

var (
	version   = "dev"
	gitCommit string
)

func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v + " " + runtime.Version()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "speechkit",
		Short:         "Local text-to-speech service and command line tools",
		Version:       formatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newServeCommand(),
		newSayCommand(),
		newVoicesCommand(),
		newCleanupCommand(),
	)
	return cmd
}

// loadRuntime reads configuration and builds the logger every subcommand uses.
func loadRuntime() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config error: %w", err)
	}
	log, err := observability.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
