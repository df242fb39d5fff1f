package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/flowchart"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/dexview/internal/model"
)

// MarkdownWriter outputs GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteDetail outputs the detail panel with a lineage flowchart.
func (w *MarkdownWriter) WriteDetail(view *model.DetailView) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(view.Number + " " + view.Name)
	md.PlainText("")

	if view.ArtworkURL != "" {
		md.PlainText(fmt.Sprintf("![%s](%s)", view.Name, view.ArtworkURL))
		md.PlainText("")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Type", valueOrDash(view.Types)},
			{"Weight", valueOrDash(view.Weight)},
			{"Height", valueOrDash(view.Height)},
			{"Species", valueOrDash(view.Species)},
			{"Egg groups", valueOrDash(view.EggGroups)},
			{"Abilities", valueOrDash(view.Abilities)},
		},
	})
	md.PlainText("")

	w.writeEvolution(md, view)

	if view.HasErrors() {
		md.Warningf("Some details could not be loaded: %s", strings.Join(view.Errors, "; "))
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// writeEvolution writes the lineage as a stage list and a mermaid flowchart.
func (w *MarkdownWriter) writeEvolution(md *markdown.Markdown, view *model.DetailView) {
	stages := model.Stages(view.Evolution)
	if len(stages) == 0 {
		return
	}

	md.H2("Evolution Chart")
	md.PlainText("")

	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = fmt.Sprintf("[%s](%s)", s.Name, s.ImageURL)
	}
	md.BulletList(names...)
	md.PlainText("")

	if view.Chain != nil && len(view.Chain.Children) > 0 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, lineageFlowchart(view.Chain))
		md.PlainText("")
	}
}

// lineageFlowchart renders an evolution tree as mermaid flowchart source.
// Nodes are numbered n0, n1, ... in pre-order.
func lineageFlowchart(root *model.EvolutionNode) string {
	fc := flowchart.NewFlowchart(io.Discard, flowchart.WithOrientalLeftToRight())

	next := 0
	var visit func(n *model.EvolutionNode) string
	visit = func(n *model.EvolutionNode) string {
		id := "n" + strconv.Itoa(next)
		next++
		fc.NodeWithText(id, model.Capitalize(n.SpeciesName))
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			fc.LinkWithArrowHead(id, visit(child))
		}
		return id
	}
	visit(root)

	return fc.String()
}

// WriteList outputs the rows as a table.
func (w *MarkdownWriter) WriteList(items []model.ListItem) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2("Catalog")
	md.PlainText("")

	if len(items) == 0 {
		md.PlainText("No entries.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		icon := "-"
		if item.IconURL != "" {
			icon = fmt.Sprintf("![%s](%s)", item.Name, item.IconURL)
		}
		rows[i] = []string{item.Number, item.Name, icon}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Number", "Name", "Icon"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteCatalogSummary outputs a summary of exported records: the number of
// records and a pie chart of how often each type occurs.
func (w *MarkdownWriter) WriteCatalogSummary(records []*model.CreatureRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("dexview export")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Records", strconv.Itoa(len(records))},
		},
	})
	md.PlainText("")

	counts := typeCounts(records)
	if len(counts) == 0 {
		md.Note("No type information available.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Type Distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range counts {
		chart.LabelAndIntValue(c.name, uint64(c.count)) //nolint:gosec // counts are non-negative
	}

	md.H2("Type Distribution")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	return len(md.String()), md.Build()
}

type typeCount struct {
	name  string
	count int
}

// typeCounts returns capitalized type names ordered by count, then name.
func typeCounts(records []*model.CreatureRecord) []typeCount {
	m := make(map[string]int)
	for _, r := range records {
		if r == nil {
			continue
		}
		for _, t := range r.Types {
			m[model.Capitalize(t)]++
		}
	}

	out := make([]typeCount, 0, len(m))
	for name, n := range m {
		out = append(out, typeCount{name: name, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
