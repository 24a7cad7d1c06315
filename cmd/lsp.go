package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kievzenit/ranni/internal/lsp"
	"github.com/spf13/cobra"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server on standard input and output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		level := cfg.LSP.LogLevel
		if cmd.Flags().Changed("log-level") {
			level, _ = cmd.Flags().GetString("log-level")
		}

		var slogLevel slog.Level
		if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}

		// stdout carries the protocol, so logs go to stderr.
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slogLevel}))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), logger, version).Serve(ctx)
	},
}

func init() {
	lspCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
}
