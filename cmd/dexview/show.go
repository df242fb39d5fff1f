package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/dexview/internal/detail"
	"github.com/nao1215/dexview/internal/report"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show the detail view of one catalog entry",
		Long: `Show fetches one entry by name or catalog number and prints its detail view:
types, height, weight, abilities, egg groups and the evolution chain.

Examples:
  dexview show pikachu
  dexview show 25 --json
  dexview show eevee --markdown -o eevee.md
  dexview show eevee --markdown -o eevee.md --tee`,
		Args: cobra.ExactArgs(1),
		RunE: runShowCmd,
	}

	cmd.Flags().Bool("json", false, "Output the detail view as JSON")
	cmd.Flags().Bool("markdown", false, "Output the detail view as Markdown")
	cmd.Flags().StringP("output", "o", "", "Write the detail view to a file")
	cmd.Flags().Bool("tee", false, "With --output, also print the detail view to stdout")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	tee, err := cmd.Flags().GetBool("tee")
	if err != nil {
		return err
	}
	if tee && outputPath == "" {
		return fmt.Errorf("--tee requires --output")
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	record, err := a.client.FetchRecordByName(ctx, args[0])
	if err != nil {
		return fmt.Errorf("looking up %q: %w", args[0], err)
	}

	view, err := detail.NewAssemblerFromConfig(a.client, a.cfg, a.logger).BuildDetailView(ctx, record)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	var w report.Writer = formatWriter(out, asJSON, asMarkdown, true)
	if tee {
		w = report.NewMultiWriter(w, formatWriter(cmd.OutOrStdout(), asJSON, asMarkdown, true))
	}
	_, writeErr := w.WriteDetail(view)
	return errors.Join(writeErr, closeOut())
}
