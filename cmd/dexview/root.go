package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dexview.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dexview",
		Short: "Terminal viewer for the public creature catalog",
		Long: `dexview is a terminal viewer for the public creature catalog REST service.

It lists the catalog page by page, filters it by name prefix, and assembles
detail views with types, abilities, egg groups and the evolution chain.

Settings are read from .dexview, the XDG config directory or ~/.dexview,
and can be overridden with DEXVIEW_* environment variables.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().String("base-url", "", "Catalog service root (overrides the config file)")
	cmd.PersistentFlags().Bool("tor", false, "Route requests through an embedded Tor daemon")

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
