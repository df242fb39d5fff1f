package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nao1215/dexview/internal/config"
	dexlog "github.com/nao1215/dexview/internal/log"
	"github.com/nao1215/dexview/internal/pokeapi/pokeapitest"
	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/viewer"
)

func TestBrowseCmd(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t)

	t.Run("runs a session", func(t *testing.T) {
		t.Parallel()

		script := strings.Join([]string{
			"",             // next page
			"/char",        // search
			"show ivysaur", // detail
			"bogus",
			"quit",
			"more", // never reached
		}, "\n") + "\n"

		res := runCLI(t, srv, script, "browse")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}

		for _, want := range []string{
			"#001   Bulbasaur\n#002   Ivysaur\n> #003   Venusaur\n#004   Charmander\n",
			"> #004   Charmander\n",
			"#002 Ivysaur",
			"Bulbasaur -> Ivysaur -> Venusaur",
			`Unknown command "bogus"`,
		} {
			if !strings.Contains(res.stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, res.stdout)
			}
		}
		if strings.Count(res.stdout, "\n> ") != 5 {
			t.Errorf("expected 5 prompts, got output:\n%s", res.stdout)
		}
	})

	t.Run("ends at end of input", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "help\n", "browse")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, "Commands:") {
			t.Errorf("expected help text, got:\n%s", res.stdout)
		}
	})
}

func TestBrowseLoop(t *testing.T) {
	t.Parallel()

	newViewer := func(t *testing.T) (*viewer.Viewer, *report.TerminalRenderer, *bytes.Buffer) {
		t.Helper()
		var out bytes.Buffer
		fake := pokeapitest.NewWithNames("bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon")
		renderer := report.NewTerminalRenderer(&out)
		cfg := config.NewConfig()
		cfg.PageLimit = 2
		v := viewer.New(cfg, fake, renderer, dexlog.Discard())
		if err := v.Start(context.Background()); err != nil {
			t.Fatalf("start failed: %v", err)
		}
		return v, renderer, &out
	}

	t.Run("slash clears the search and reloads the first page", func(t *testing.T) {
		t.Parallel()

		v, renderer, out := newViewer(t)
		if err := browseLoop(context.Background(), strings.NewReader("/char\n/\nquit\n"), out, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := renderer.Items()
		if len(got) != 2 || got[0].Name != "Bulbasaur" || got[1].Name != "Ivysaur" {
			t.Errorf("expected first page after clearing, got %+v", got)
		}
		if v.Session().Offset() != 2 {
			t.Errorf("expected offset 2, got %d", v.Session().Offset())
		}
	})

	t.Run("no match prints suggestions", func(t *testing.T) {
		t.Parallel()

		v, renderer, out := newViewer(t)
		if err := browseLoop(context.Background(), strings.NewReader("/charmelon\n"), out, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(renderer.Items()) != 0 {
			t.Errorf("expected empty list, got %+v", renderer.Items())
		}
		if !strings.Contains(out.String(), "Did you mean: charmeleon?") {
			t.Errorf("expected suggestion, got:\n%s", out.String())
		}
	})

	t.Run("show without a name prints usage", func(t *testing.T) {
		t.Parallel()

		v, _, out := newViewer(t)
		if err := browseLoop(context.Background(), strings.NewReader("show\n"), out, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "usage: show <name|id>") {
			t.Errorf("expected usage, got:\n%s", out.String())
		}
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		t.Parallel()

		v, _, out := newViewer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := browseLoop(ctx, strings.NewReader("more\n"), out, v); err == nil {
			t.Error("expected context error")
		}
	})
}
