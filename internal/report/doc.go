// Package report renders catalog lists and detail views.
//
// Renderer is the interactive collaborator driven by the pager, search
// engine and viewer: it receives list rows, highlight changes, loading
// indicator toggles and finished detail views. TerminalRenderer is the
// line-oriented implementation used by the CLI.
//
// Writer implementations produce a one-shot document for a detail view
// or a list of rows: SimpleWriter (plain text), JSONWriter and
// MarkdownWriter.
package report
