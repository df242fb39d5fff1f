package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/viewer"
)

const browseHelp = `Commands:
  <Enter>, more    load the next page
  /<term>          show entries starting with term
  /                clear the search and reload the first page
  show <name|id>   show the detail view of an entry
  help             print this help
  quit             leave
`

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Browse starts a line-driven session over the catalog.

The first page is listed on start. Press Enter to load the next page,
type /term to search, / to clear the search, show <name> to open a
detail view and quit to leave.`,
		Args: cobra.NoArgs,
		RunE: runBrowseCmd,
	}

	cmd.Flags().Bool("icons", false, "Print icon URLs next to each row")

	return cmd
}

// runBrowseCmd executes the browse command.
func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	icons, err := cmd.Flags().GetBool("icons")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	renderer := report.NewTerminalRenderer(out, report.WithIcons(icons))
	v := viewer.New(a.cfg, a.client, renderer, a.logger)

	// Start logs its own failures; the session stays usable either way.
	_ = v.Start(ctx) //nolint:errcheck // logged by the viewer

	return browseLoop(ctx, cmd.InOrStdin(), out, v)
}

// browseLoop reads commands from in until quit, end of input or
// cancellation. Operation failures are logged by the viewer and do not
// end the session.
func browseLoop(ctx context.Context, in io.Reader, out io.Writer, v *viewer.Viewer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimLeft(scanner.Text(), " \t")
		cmdName, rest, _ := strings.Cut(strings.TrimSpace(line), " ")

		switch {
		case cmdName == "quit" || cmdName == "exit":
			return nil
		case cmdName == "" || cmdName == "more":
			if ran, _ := v.More(ctx); !ran { //nolint:errcheck // logged by the viewer
				fmt.Fprintln(out, "A page is already loading.")
			}
		case strings.HasPrefix(line, "/"):
			term := strings.TrimPrefix(line, "/")
			matches, err := v.Input(ctx, term)
			if err == nil && term != "" && len(matches) == 0 {
				fmt.Fprintf(out, "No entries start with %q.\n", term)
				if names := v.Search().Suggest(term, suggestionCount); len(names) > 0 {
					fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(names, ", "))
				}
			}
		case cmdName == "show":
			name := strings.TrimSpace(rest)
			if name == "" {
				fmt.Fprintln(out, "usage: show <name|id>")
				continue
			}
			_, _ = v.SelectByName(ctx, name) //nolint:errcheck // logged by the viewer
		case cmdName == "help":
			fmt.Fprint(out, browseHelp)
		default:
			fmt.Fprintf(out, "Unknown command %q. Type help for the list of commands.\n", cmdName)
		}
	}
}
