package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/dexview/internal/pager"
	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/session"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries page by page",
		Long: `List prints the catalog in order, one page of page_limit entries at a time.

Each row shows the padded catalog number and the capitalized name.

Examples:
  # First page
  dexview list

  # First three pages with icon URLs
  dexview list --pages 3 --icons

  # First two pages as a Markdown table
  dexview list --pages 2 --markdown`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().IntP("pages", "p", 1, "Number of pages to load")
	cmd.Flags().Bool("icons", false, "Print icon URLs next to each row")
	cmd.Flags().Bool("json", false, "Output the loaded rows as JSON")
	cmd.Flags().Bool("markdown", false, "Output the loaded rows as a Markdown table")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	pages, err := cmd.Flags().GetInt("pages")
	if err != nil {
		return err
	}
	if pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", pages)
	}
	icons, err := cmd.Flags().GetBool("icons")
	if err != nil {
		return err
	}
	asJSON, asMarkdown, err := listFormat(cmd)
	if err != nil {
		return err
	}
	structured := asJSON || asMarkdown

	ctx, cancel := signalContext(cmd)
	defer cancel()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	renderer := report.NewTerminalRenderer(rowsOutput(cmd, structured), report.WithIcons(icons))
	pg := pager.New(a.client, renderer, session.New(a.cfg.PageLimit),
		pager.WithAdvancePolicy(a.cfg.AdvancePolicy),
		pager.WithConcurrency(a.cfg.Concurrency),
		pager.WithLogger(a.logger),
	)

	if err := pg.LoadInitialPage(ctx); err != nil {
		return err
	}
	for i := 1; i < pages; i++ {
		if _, err := pg.LoadNextPage(ctx); err != nil {
			return err
		}
	}

	if structured {
		_, err := formatWriter(cmd.OutOrStdout(), asJSON, asMarkdown, icons).WriteList(renderer.Items())
		return err
	}
	return nil
}

// listFormat reads the --json and --markdown flags of a list command.
func listFormat(cmd *cobra.Command) (asJSON, asMarkdown bool, err error) {
	if asJSON, err = cmd.Flags().GetBool("json"); err != nil {
		return false, false, err
	}
	if asMarkdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return false, false, err
	}
	return asJSON, asMarkdown, nil
}

// rowsOutput is where the renderer prints rows as they load. Structured
// output is written once at the end, so live rows are dropped.
func rowsOutput(cmd *cobra.Command, structured bool) io.Writer {
	if structured {
		return io.Discard
	}
	return cmd.OutOrStdout()
}
