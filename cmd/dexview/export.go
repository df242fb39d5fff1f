package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/database"
	"github.com/nao1215/dexview/internal/detail"
	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pipeline"
	"github.com/nao1215/dexview/internal/pokeapi"
	"github.com/nao1215/dexview/internal/report"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog records to a local SQLite archive",
		Long: `Export fetches catalog entries, their full records and their assembled
detail views, and stores them in a SQLite archive (dexview.db).

With --pages 0 the whole catalog (catalog_size entries) is exported.

Examples:
  # First page into the default data directory
  dexview export

  # Whole catalog, plus a Markdown summary with a type distribution chart
  dexview export --pages 0 --db ./archive --summary ./archive/summary.md`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().IntP("pages", "p", 1, "Number of pages to export (0 for the whole catalog)")
	cmd.Flags().String("db", config.XDGDataDir(), "Directory of the archive database")
	cmd.Flags().Bool("details", true, "Assemble and store detail views")
	cmd.Flags().String("summary", "", "Write a Markdown catalog summary to this file")

	return cmd
}

// exportOptions holds the parsed export flags.
type exportOptions struct {
	pages       int
	dbDir       string
	details     bool
	summaryPath string
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	opts, err := parseExportFlags(cmd)
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

	archive, err := database.Open(opts.dbDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer archive.Close()

	entries, err := collectEntries(ctx, a.client, a.cfg, opts.pages)
	if err != nil {
		return err
	}
	if err := archive.SaveEntries(ctx, entries); err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var assembler *detail.Assembler
	if opts.details {
		assembler = detail.NewAssemblerFromConfig(a.client, a.cfg, a.logger)
	}
	views, err := exportEntries(ctx, a.client, assembler, entries, a.cfg.Concurrency, a.logger, bar)
	if err != nil {
		return err
	}
	_ = bar.Finish() //nolint:errcheck // cosmetic

	for _, view := range views {
		if err := archive.SaveRecord(ctx, view.Record); err != nil {
			return err
		}
		if opts.details {
			if err := archive.SaveDetail(ctx, view); err != nil {
				return err
			}
		}
	}

	if opts.summaryPath != "" {
		if err := writeSummary(ctx, cmd, archive, opts.summaryPath); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(views), archive.Path())
	return nil
}

// parseExportFlags reads and checks the export flags.
func parseExportFlags(cmd *cobra.Command) (*exportOptions, error) {
	var opts exportOptions
	var err error

	if opts.pages, err = cmd.Flags().GetInt("pages"); err != nil {
		return nil, err
	}
	if opts.pages < 0 {
		return nil, fmt.Errorf("--pages must not be negative, got %d", opts.pages)
	}
	if opts.dbDir, err = cmd.Flags().GetString("db"); err != nil {
		return nil, err
	}
	if opts.dbDir == "" {
		return nil, errors.New("--db must not be empty")
	}
	if opts.details, err = cmd.Flags().GetBool("details"); err != nil {
		return nil, err
	}
	if opts.summaryPath, err = cmd.Flags().GetString("summary"); err != nil {
		return nil, err
	}
	return &opts, nil
}

// collectEntries lists the entries to export: the whole catalog when
// pages is 0, otherwise up to pages pages of PageLimit entries. Listing
// stops early at the first empty page.
func collectEntries(ctx context.Context, fetcher pokeapi.Fetcher, cfg *config.Config, pages int) ([]model.CatalogEntry, error) {
	if pages == 0 {
		return fetcher.ListCatalog(ctx, 0, cfg.CatalogSize)
	}

	var entries []model.CatalogEntry
	for page := range pages {
		batch, err := fetcher.ListCatalog(ctx, page*cfg.PageLimit, cfg.PageLimit)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		entries = append(entries, batch...)
	}
	return entries, nil
}

// progressAdder is the part of a progress bar exportEntries drives.
type progressAdder interface {
	Add(num int) error
}

// exportEntries fetches the record of every entry and, when assembler is
// not nil, its detail view. Results keep entry order; progress is added
// to bar, which may be nil, as items finish. One failure fails the export.
func exportEntries(
	ctx context.Context,
	fetcher pokeapi.Fetcher,
	assembler *detail.Assembler,
	entries []model.CatalogEntry,
	concurrency int,
	logger *slog.Logger,
	bar progressAdder,
) ([]*model.DetailView, error) {
	bp := pipeline.NewBatchProcessor(
		func(ctx context.Context, e model.CatalogEntry) (*model.DetailView, error) {
			record, err := fetcher.FetchRecord(ctx, e.DetailURL)
			if err != nil {
				return nil, err
			}
			if assembler == nil {
				return model.NewDetailView(record), nil
			}
			return assembler.BuildDetailView(ctx, record)
		},
		pipeline.WithConcurrency(concurrency),
		pipeline.WithBatchLogger(logger),
	)

	views := make([]*model.DetailView, len(entries))
	err := bp.ProcessBatchWithCallback(ctx, entries, func(view *model.DetailView, i int) {
		views[i] = view
		if bar != nil {
			_ = bar.Add(1) //nolint:errcheck // progress only
		}
	})
	if err != nil {
		return nil, fmt.Errorf("exporting records: %w", err)
	}
	return views, nil
}

// writeSummary writes a Markdown summary of every record in the archive,
// including those stored by earlier exports, to path.
func writeSummary(ctx context.Context, cmd *cobra.Command, archive *database.Archive, path string) error {
	records, err := archive.ListRecords(ctx)
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	_, writeErr := report.NewMarkdownWriter(out).WriteCatalogSummary(records)
	return errors.Join(writeErr, closeOut())
}
