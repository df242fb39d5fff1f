package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/dexview/internal/model"
)

const ruleWidth = 60

// SimpleWriter outputs human-readable plain text.
type SimpleWriter struct {
	baseWriter

	// showImages adds artwork and icon URLs to the output.
	showImages bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithImages includes image URLs in the output.
func WithImages(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showImages = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteDetail outputs the detail panel.
func (w *SimpleWriter) WriteDetail(view *model.DetailView) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", view.Number, view.Name)
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	if w.showImages && view.ArtworkURL != "" {
		fmt.Fprintf(&sb, "Artwork:    %s\n", view.ArtworkURL)
	}
	fmt.Fprintf(&sb, "Type:       %s\n", valueOrDash(view.Types))
	fmt.Fprintf(&sb, "Weight:     %s\n", valueOrDash(view.Weight))
	fmt.Fprintf(&sb, "Height:     %s\n", valueOrDash(view.Height))
	fmt.Fprintf(&sb, "Species:    %s\n", valueOrDash(view.Species))
	fmt.Fprintf(&sb, "Egg groups: %s\n", valueOrDash(view.EggGroups))
	fmt.Fprintf(&sb, "Abilities:  %s\n", valueOrDash(view.Abilities))

	if len(view.Evolution) > 0 {
		sb.WriteString(strings.Repeat("-", ruleWidth))
		sb.WriteString("\n")
		sb.WriteString("EVOLUTION CHART\n")
		fmt.Fprintf(&sb, "  %s\n", stageNames(view.Evolution))
		if w.showImages {
			for _, s := range model.Stages(view.Evolution) {
				fmt.Fprintf(&sb, "  %-12s %s\n", s.Name, s.ImageURL)
			}
		}
	}

	for _, e := range view.Errors {
		fmt.Fprintf(&sb, "[!] %s\n", e)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteList outputs one row per item.
func (w *SimpleWriter) WriteList(items []model.ListItem) (int, error) {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(formatRow(item, w.showImages))
	}
	return w.output.Write([]byte(sb.String()))
}

// formatRow renders one list row with a trailing newline.
func formatRow(item model.ListItem, withIcon bool) string {
	if withIcon && item.IconURL != "" {
		return fmt.Sprintf("%-6s %-14s %s\n", item.Number, item.Name, item.IconURL)
	}
	return fmt.Sprintf("%-6s %s\n", item.Number, item.Name)
}
