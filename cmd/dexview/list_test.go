package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/dexview/internal/model"
)

func TestListCmd(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t)

	t.Run("prints the first page", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "", "list")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		want := "#001   Bulbasaur\n#002   Ivysaur\n"
		if res.stdout != want {
			t.Errorf("expected %q, got %q", want, res.stdout)
		}
	})

	t.Run("appends further pages in order", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "", "list", "--pages", "3")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		want := "#001   Bulbasaur\n#002   Ivysaur\n#003   Venusaur\n#004   Charmander\n"
		if res.stdout != want {
			t.Errorf("expected %q, got %q", want, res.stdout)
		}
	})

	t.Run("prints icons on request", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "", "list", "--icons")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		if !strings.Contains(res.stdout, "https://img.test/icons/1.png") {
			t.Errorf("expected icon URL in output, got %q", res.stdout)
		}
	})

	t.Run("writes loaded rows as json", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "", "list", "--pages", "2", "--json")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		var got []model.ListItem
		if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
		}
		want := []model.ListItem{
			{ID: 1, Number: "#001", Name: "Bulbasaur", IconURL: "https://img.test/icons/1.png"},
			{ID: 2, Number: "#002", Name: "Ivysaur", IconURL: "https://img.test/icons/2.png"},
			{ID: 3, Number: "#003", Name: "Venusaur", IconURL: "https://img.test/icons/3.png"},
			{ID: 4, Number: "#004", Name: "Charmander", IconURL: "https://img.test/icons/4.png"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("writes loaded rows as a markdown table", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "", "list", "--markdown")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		for _, want := range []string{"## Catalog", "Number", "Bulbasaur", "Ivysaur"} {
			if !strings.Contains(res.stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, res.stdout)
			}
		}
		if strings.Contains(res.stdout, "#001   Bulbasaur") {
			t.Errorf("expected no plain rows in markdown output, got:\n%s", res.stdout)
		}
	})

	t.Run("json and markdown are exclusive", func(t *testing.T) {
		t.Parallel()

		if res := runCLI(t, srv, "", "list", "--json", "--markdown"); res.err == nil {
			t.Error("expected error for conflicting formats")
		}
	})

	t.Run("rejects zero pages", func(t *testing.T) {
		t.Parallel()

		if res := runCLI(t, srv, "", "list", "--pages", "0"); res.err == nil {
			t.Error("expected error for --pages 0")
		}
	})

	t.Run("reports an unreachable service", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, srv, "", "--base-url", srv.URL+"/nowhere", "list")
		if res.err == nil {
			t.Fatal("expected error")
		}
		if res.stdout != "" {
			t.Errorf("expected no rows, got %q", res.stdout)
		}
	})
}
