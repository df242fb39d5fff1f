package report

import (
	"io"

	"github.com/nao1215/dexview/internal/model"
)

// Writer outputs detail views and lists in one document format.
type Writer interface {
	// WriteDetail outputs one detail view.
	WriteDetail(view *model.DetailView) (int, error)

	// WriteList outputs list rows in the given order.
	WriteList(items []model.ListItem) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteDetail outputs the view to all Writers, stopping on the first error.
func (m *MultiWriter) WriteDetail(view *model.DetailView) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteDetail(view)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteList outputs the rows to all Writers, stopping on the first error.
func (m *MultiWriter) WriteList(items []model.ListItem) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteList(items)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// valueOrDash returns s, or "-" when s is empty.
func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// stageNames returns the stage names of a flattened lineage with
// transitions rendered as arrows, e.g. "Bulbasaur -> Ivysaur".
func stageNames(steps []model.EvolutionStep) string {
	var out string
	for _, s := range steps {
		switch s.Kind {
		case model.StepStage:
			if out != "" && out[len(out)-1] != ' ' {
				out += ", "
			}
			out += s.Name
		case model.StepTransition:
			out += " -> "
		}
	}
	return out
}
