package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/search"
)

// suggestionCount is the number of names offered when nothing matches.
const suggestionCount = 3

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "List catalog entries whose name starts with a term",
		Long: `Search downloads the catalog index and lists every entry whose name starts
with the given term, ignoring case.

When nothing matches, the closest names are suggested instead.

Examples:
  dexview search char
  dexview search PIKA
  dexview search eev --json`,
		Args: cobra.ExactArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().Bool("icons", false, "Print icon URLs next to each row")
	cmd.Flags().Bool("json", false, "Output the matches as JSON")
	cmd.Flags().Bool("markdown", false, "Output the matches as a Markdown table")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	term := args[0]
	if term == "" {
		return fmt.Errorf("search term must not be empty")
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
	engine := search.New(a.client, renderer, nil,
		search.WithCatalogSize(a.cfg.CatalogSize),
		search.WithConcurrency(a.cfg.Concurrency),
		search.WithLogger(a.logger),
	)

	if err := engine.Prepare(ctx); err != nil {
		return err
	}
	matches, err := engine.OnInput(ctx, term)
	if err != nil {
		return err
	}
	if structured {
		_, err := formatWriter(cmd.OutOrStdout(), asJSON, asMarkdown, icons).WriteList(renderer.Items())
		return err
	}
	if len(matches) == 0 {
		printNoMatch(cmd, engine, term)
	}
	return nil
}

// printNoMatch reports an empty search and offers suggestions.
func printNoMatch(cmd *cobra.Command, engine *search.Engine, term string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "No entries start with %q.\n", term)
	if names := engine.Suggest(term, suggestionCount); len(names) > 0 {
		fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(names, ", "))
	}
}
