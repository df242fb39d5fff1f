package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/dexview/internal/model"
)

// setupTestArchive creates a temporary archive for testing.
func setupTestArchive(t *testing.T) *Archive {
	t.Helper()

	a, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// TestOpen tests archive opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates archive in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "new", "sub")
		a, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open archive: %v", err)
		}
		defer a.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("archive file was not created: %v", err)
		}
		if a.Path() != filepath.Join(dir, FileName) {
			t.Errorf("unexpected path %q", a.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails for missing archive", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("reopens existing archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open archive: %v", err)
		}
		if err := a.SaveRecord(context.Background(), &model.CreatureRecord{ID: 1, Name: "bulbasaur"}); err != nil {
			t.Fatalf("failed to save record: %v", err)
		}
		_ = a.Close()

		b, err := Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen archive: %v", err)
		}
		defer b.Close()

		n, err := b.CountRecords(context.Background())
		if err != nil || n != 1 {
			t.Errorf("expected 1 record, got %d (err=%v)", n, err)
		}
	})
}

// TestEntries tests entry storage.
func TestEntries(t *testing.T) {
	t.Parallel()

	a := setupTestArchive(t)
	ctx := context.Background()

	first := []model.CatalogEntry{
		{Name: "bulbasaur", DetailURL: "https://x.test/pokemon/1/"},
		{Name: "ivysaur", DetailURL: "https://x.test/pokemon/2/"},
	}
	second := []model.CatalogEntry{
		{Name: "venusaur", DetailURL: "https://x.test/pokemon/3/"},
		{Name: "bulbasaur", DetailURL: "https://y.test/pokemon/1/"},
	}
	if err := a.SaveEntries(ctx, first); err != nil {
		t.Fatalf("failed to save entries: %v", err)
	}
	if err := a.SaveEntries(ctx, second); err != nil {
		t.Fatalf("failed to save entries: %v", err)
	}

	got, err := a.ListEntries(ctx)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	want := []model.CatalogEntry{
		{Name: "bulbasaur", DetailURL: "https://y.test/pokemon/1/"},
		{Name: "ivysaur", DetailURL: "https://x.test/pokemon/2/"},
		{Name: "venusaur", DetailURL: "https://x.test/pokemon/3/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListEntries() mismatch (-want +got):\n%s", diff)
	}
}

// TestRecords tests record storage.
func TestRecords(t *testing.T) {
	t.Parallel()

	a := setupTestArchive(t)
	ctx := context.Background()

	r := &model.CreatureRecord{
		ID:          4,
		Name:        "charmander",
		Types:       []string{"fire"},
		Weight:      85,
		Height:      6,
		AbilityURLs: []string{"https://x.test/ability/66/"},
		SpeciesName: "charmander",
		SpeciesURL:  "https://x.test/pokemon-species/4/",
	}
	if err := a.SaveRecord(ctx, r); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}
	if err := a.SaveRecord(ctx, &model.CreatureRecord{ID: 1, Name: "bulbasaur"}); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	t.Run("get existing", func(t *testing.T) {
		t.Parallel()

		got, err := a.GetRecord(ctx, 4)
		if err != nil {
			t.Fatalf("failed to get record: %v", err)
		}
		if diff := cmp.Diff(r, got.Record); diff != "" {
			t.Errorf("GetRecord() mismatch (-want +got):\n%s", diff)
		}
		if got.FetchedAt.IsZero() {
			t.Error("expected fetched_at to be set")
		}
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		if _, err := a.GetRecord(ctx, 999); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list ordered by id", func(t *testing.T) {
		t.Parallel()

		got, err := a.ListRecords(ctx)
		if err != nil {
			t.Fatalf("failed to list records: %v", err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
			t.Errorf("unexpected records: %+v", got)
		}
	})
}

// TestDetails tests detail view storage.
func TestDetails(t *testing.T) {
	t.Parallel()

	a := setupTestArchive(t)
	ctx := context.Background()

	view := &model.DetailView{
		ID:        4,
		Number:    "#004",
		Name:      "Charmander",
		Types:     "Fire",
		Abilities: "Blaze, Solar-power",
		Evolution: []model.EvolutionStep{
			model.Stage("Charmander", "https://art.test/4.png"),
			model.Transition(),
			model.Stage("Charmeleon", "https://art.test/5.png"),
		},
	}
	if err := a.SaveDetail(ctx, view); err != nil {
		t.Fatalf("failed to save detail: %v", err)
	}

	got, err := a.GetDetail(ctx, 4)
	if err != nil {
		t.Fatalf("failed to get detail: %v", err)
	}
	if diff := cmp.Diff(view, got); diff != "" {
		t.Errorf("GetDetail() mismatch (-want +got):\n%s", diff)
	}

	if _, err := a.GetDetail(ctx, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
