package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/charliek/tracehelper/internal/clipboard"
	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/tui"
)

// runTUI handles the root command
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file when verbose
	var logOut io.Writer = io.Discard
	if verbose {
		f, err := os.OpenFile(constants.DebugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, verbose)

	// Frames and clipboard sequences share one serialized terminal writer
	out := clipboard.NewSharedOutput(os.Stdout)
	a := newApp(cfg, cfg.Download.Dir, logger, out.Surface())
	logger.Info("starting tui", "service", cfg.Service.Address)

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, a.ctrl, a.exporter, tui.Options{
		Address:  cfg.Service.Address,
		Timeout:  cfg.RequestTimeout(),
		Defaults: cfg.SubmissionOptions(),
		Output:   out,
	}); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// cmdContext returns the command's context, or Background when run without one
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
