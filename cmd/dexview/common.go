package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/dexview/internal/config"
	dexlog "github.com/nao1215/dexview/internal/log"
	"github.com/nao1215/dexview/internal/pokeapi"
	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/tor"
)

// app bundles what every catalog command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *pokeapi.Client
	tor    *tor.Daemon
}

// close stops the embedded Tor daemon, if one was started.
func (a *app) close() {
	if a.tor == nil {
		return
	}
	if err := a.tor.Stop(); err != nil {
		a.logger.Warn("failed to stop embedded Tor", "error", err)
	}
}

// getBoolFlag returns a bool flag from the command or its root.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getStringFlag returns a string flag from the command or its root.
func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// buildConfig loads the configuration file and applies global flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	path := config.FindConfigFile(getStringFlag(cmd, "config"))
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if baseURL := getStringFlag(cmd, "base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.Verbose = getBoolFlag(cmd, "verbose")
	if getBoolFlag(cmd, "tor") {
		cfg.EmbeddedTor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the structured logger for a command. Logs go to the
// command's error stream so they never mix with rendered output.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	return dexlog.NewLogger(cmd.ErrOrStderr(), verbose, false)
}

// newApp loads the configuration and builds the logger and the client.
// With embedded Tor enabled it also starts the daemon and points the
// client at its SOCKS port; callers must defer close.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := setupLogger(cmd, cfg.Verbose)
	a := &app{cfg: cfg, logger: logger}

	if cfg.EmbeddedTor {
		fmt.Fprintln(cmd.ErrOrStderr(), "Starting embedded Tor daemon (this may take 1-3 minutes)...")
		a.tor = tor.NewDaemon(
			tor.WithStartupTimeout(cfg.TorStartupTimeout),
			tor.WithLogger(logger),
		)
		if err := a.tor.Start(ctx); err != nil {
			return nil, err
		}
		addr, err := a.tor.SocksAddr()
		if err != nil {
			a.close()
			return nil, err
		}
		cfg.ProxyAddress = addr
	}

	a.client, err = pokeapi.NewClientFromConfig(cfg, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	logger.Debug("configuration loaded",
		"base_url", cfg.BaseURL,
		"page_limit", cfg.PageLimit,
		"proxy", cfg.ProxyAddress,
	)
	return a, nil
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openOutput returns the writer for path, or the command's output when
// path is empty. The returned close function is never nil.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// formatWriter picks the report writer for the requested format. images
// controls whether plain text output includes image URLs.
func formatWriter(out io.Writer, asJSON, asMarkdown, images bool) report.Writer {
	switch {
	case asJSON:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case asMarkdown:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithImages(images))
	}
}
