package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// fakeCreature is one entry served by the test catalog.
type fakeCreature struct {
	id    int
	name  string
	types []string
	chain int
}

var fakeCatalog = []fakeCreature{
	{id: 1, name: "bulbasaur", types: []string{"grass", "poison"}, chain: 1},
	{id: 2, name: "ivysaur", types: []string{"grass", "poison"}, chain: 1},
	{id: 3, name: "venusaur", types: []string{"grass", "poison"}, chain: 1},
	{id: 4, name: "charmander", types: []string{"fire"}, chain: 2},
}

// newCatalogServer starts a fake catalog service over fakeCatalog.
func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	find := func(key string) (fakeCreature, bool) {
		for _, c := range fakeCatalog {
			if c.name == key || strconv.Itoa(c.id) == key {
				return c, true
			}
		}
		return fakeCreature{}, false
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // test server
	}

	mux.HandleFunc("GET /pokemon", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset")) //nolint:errcheck // defaults to 0
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))   //nolint:errcheck // defaults to 0
		results := []map[string]string{}
		for i := offset; i < len(fakeCatalog) && i < offset+limit; i++ {
			results = append(results, map[string]string{
				"name": fakeCatalog[i].name,
				"url":  fmt.Sprintf("%s/pokemon/%d/", srv.URL, fakeCatalog[i].id),
			})
		}
		writeJSON(w, map[string]any{"count": len(fakeCatalog), "results": results})
	})

	mux.HandleFunc("GET /pokemon/{key}/", func(w http.ResponseWriter, r *http.Request) {
		c, ok := find(r.PathValue("key"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		types := make([]map[string]any, 0, len(c.types))
		for i, name := range c.types {
			types = append(types, map[string]any{"slot": i + 1, "type": map[string]string{"name": name}})
		}
		writeJSON(w, map[string]any{
			"id":     c.id,
			"name":   c.name,
			"height": 7,
			"weight": 69,
			"types":  types,
			"abilities": []map[string]any{
				{"ability": map[string]string{"name": "overgrow", "url": srv.URL + "/ability/65/"}, "slot": 1},
			},
			"species": map[string]string{
				"name": c.name,
				"url":  fmt.Sprintf("%s/pokemon-species/%d/", srv.URL, c.id),
			},
			"sprites": map[string]any{
				"front_default": fmt.Sprintf("https://img.test/%d.png", c.id),
				"other": map[string]any{
					"official-artwork": map[string]any{"front_default": fmt.Sprintf("https://img.test/art/%d.png", c.id)},
				},
				"versions": map[string]any{
					"generation-viii": map[string]any{
						"icons": map[string]any{"front_default": fmt.Sprintf("https://img.test/icons/%d.png", c.id)},
					},
				},
			},
		})
	})

	mux.HandleFunc("GET /pokemon-species/{id}/", func(w http.ResponseWriter, r *http.Request) {
		c, ok := find(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{
			"egg_groups":      []map[string]string{{"name": "monster"}, {"name": "plant"}},
			"evolution_chain": map[string]string{"url": fmt.Sprintf("%s/evolution-chain/%d/", srv.URL, c.chain)},
		})
	})

	mux.HandleFunc("GET /ability/65/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"name": "overgrow"})
	})

	species := func(id int) map[string]string {
		return map[string]string{
			"name": fakeCatalog[id-1].name,
			"url":  fmt.Sprintf("%s/pokemon-species/%d/", srv.URL, id),
		}
	}
	mux.HandleFunc("GET /evolution-chain/1/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 1, "chain": map[string]any{
			"species": species(1),
			"evolves_to": []any{map[string]any{
				"species": species(2),
				"evolves_to": []any{map[string]any{
					"species":    species(3),
					"evolves_to": []any{},
				}},
			}},
		}})
	})
	mux.HandleFunc("GET /evolution-chain/2/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 2, "chain": map[string]any{
			"species":    species(4),
			"evolves_to": []any{},
		}})
	})

	return srv
}

// writeTestConfig writes a small configuration file and returns its path.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("base_url: %s\npage_limit: 2\ncatalog_size: 10\nconcurrency: 2\n", baseURL)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// cliResult is the captured output of one CLI run.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI runs the root command against srv with args and an optional stdin.
func runCLI(t *testing.T, srv *httptest.Server, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(append([]string{"--config", writeTestConfig(t, srv.URL)}, args...))

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
