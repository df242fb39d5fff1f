package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/nao1215/dexview/internal/model"
)

// Renderer is the presentation collaborator driven by the pager, the
// search engine and the viewer. Implementations must be safe for
// concurrent use.
type Renderer interface {
	// Clear removes every row from the list.
	Clear()

	// Append adds rows to the end of the list, in order.
	Append(items ...model.ListItem)

	// SetHighlighted turns the highlight of the row with id on or off.
	SetHighlighted(id int, on bool)

	// ShowLoading displays the loading indicator.
	ShowLoading()

	// HideLoading hides the loading indicator.
	HideLoading()

	// RenderDetail displays an assembled detail view.
	RenderDetail(view *model.DetailView)
}

// TerminalRenderer renders to a line-oriented terminal. It keeps the
// rendered list so callers can inspect it.
type TerminalRenderer struct {
	mu          sync.Mutex
	out         io.Writer
	detail      Writer
	showIcons   bool
	items       []model.ListItem
	highlighted map[int]bool
	loading     bool
}

// TerminalOption configures a TerminalRenderer.
type TerminalOption func(*TerminalRenderer)

// WithDetailWriter sets the writer used by RenderDetail.
// The default is a SimpleWriter on the same output.
func WithDetailWriter(w Writer) TerminalOption {
	return func(r *TerminalRenderer) {
		r.detail = w
	}
}

// WithIcons prints icon URLs next to list rows.
func WithIcons(show bool) TerminalOption {
	return func(r *TerminalRenderer) {
		r.showIcons = show
	}
}

// NewTerminalRenderer creates a TerminalRenderer writing to out.
func NewTerminalRenderer(out io.Writer, opts ...TerminalOption) *TerminalRenderer {
	r := &TerminalRenderer{
		out:         out,
		highlighted: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.detail == nil {
		r.detail = NewSimpleWriter(out)
	}
	return r
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = r.items[:0]
	clear(r.highlighted)
}

// Append implements Renderer.
func (r *TerminalRenderer) Append(items ...model.ListItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items = append(r.items, item)
		fmt.Fprint(r.out, formatRow(item, r.showIcons))
	}
}

// SetHighlighted implements Renderer.
func (r *TerminalRenderer) SetHighlighted(id int, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if on {
		r.highlighted[id] = true
		return
	}
	delete(r.highlighted, id)
}

// ShowLoading implements Renderer.
func (r *TerminalRenderer) ShowLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = true
}

// HideLoading implements Renderer.
func (r *TerminalRenderer) HideLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
}

// RenderDetail implements Renderer. Write errors are ignored: the terminal
// is the only place they could be reported.
func (r *TerminalRenderer) RenderDetail(view *model.DetailView) {
	if view == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.detail.WriteDetail(view) //nolint:errcheck // see doc comment
}

// Items returns a copy of the rendered rows.
func (r *TerminalRenderer) Items() []model.ListItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ListItem(nil), r.items...)
}

// Highlighted returns the highlighted row IDs in list order.
func (r *TerminalRenderer) Highlighted() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for _, item := range r.items {
		if r.highlighted[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Loading reports whether the loading indicator is shown.
func (r *TerminalRenderer) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}
