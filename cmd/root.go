package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"docker-up/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// configPath is the directory holding docker-up.yaml and .env.
	configPath string
	// outputFormat selects how reports are printed (log, json).
	outputFormat string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "docker-up",
	Short: "Declarative Docker Engine reconciler",
	Long: `docker-up converges networks, volumes, secrets and services on a Docker
Engine to the state declared in a stack file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Interrupting a run cancels the in-flight daemon call
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Console format with ISO8601 timestamps reads better on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory holding docker-up.yaml and .env")
	RootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "log", "Report output format (log, json)")
}
