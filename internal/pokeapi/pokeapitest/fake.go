// Package pokeapitest provides an in-memory pokeapi.Fetcher for tests.
package pokeapitest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nao1215/dexview/internal/model"
)

// BaseURL is the root used for every URL the fake hands out.
const BaseURL = "https://catalog.test/api/v2"

// ErrNotFound is returned for URLs the fake does not know.
var ErrNotFound = errors.New("pokeapitest: not found")

// ListCall records the arguments of one ListCatalog call.
type ListCall struct {
	Offset int
	Limit  int
}

// Fake is a concurrency-safe Fetcher backed by maps.
type Fake struct {
	mu          sync.Mutex
	entries     []model.CatalogEntry
	records     map[string]*model.CreatureRecord
	species     map[string]*model.SpeciesInfo
	abilities   map[string]string
	chains      map[string]*model.EvolutionNode
	failures    map[string]error
	listErr     error
	listCalls   []ListCall
	recordCalls int

	// BeforeList runs at the start of every ListCatalog call, outside the lock.
	BeforeList func()
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		records:   make(map[string]*model.CreatureRecord),
		species:   make(map[string]*model.SpeciesInfo),
		abilities: make(map[string]string),
		chains:    make(map[string]*model.EvolutionNode),
		failures:  make(map[string]error),
	}
}

// NewWithNames returns a Fake whose catalog holds one record per name,
// numbered from 1 in argument order.
func NewWithNames(names ...string) *Fake {
	f := New()
	for i, name := range names {
		f.Add(&model.CreatureRecord{ID: i + 1, Name: name})
	}
	return f
}

// RecordURL returns the detail URL the fake uses for id.
func RecordURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", BaseURL, id)
}

// SpeciesURL returns the species URL the fake uses for id.
func SpeciesURL(id int) string {
	return fmt.Sprintf("%s/pokemon-species/%d/", BaseURL, id)
}

// Add appends r to the catalog and returns its entry.
func (f *Fake) Add(r *model.CreatureRecord) model.CatalogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := model.CatalogEntry{Name: r.Name, DetailURL: RecordURL(r.ID)}
	f.entries = append(f.entries, entry)
	f.records[entry.DetailURL] = r
	return entry
}

// AddSpecies registers species data at url.
func (f *Fake) AddSpecies(url string, info *model.SpeciesInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.species[url] = info
}

// AddAbility registers an ability name at url.
func (f *Fake) AddAbility(url, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abilities[url] = name
}

// AddChain registers an evolution tree at url.
func (f *Fake) AddChain(url string, root *model.EvolutionNode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chains[url] = root
}

// Fail makes every fetch of url return err.
func (f *Fake) Fail(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[url] = err
}

// FailList makes ListCatalog return err; nil clears it.
func (f *Fake) FailList(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

// Entries returns a copy of the catalog.
func (f *Fake) Entries() []model.CatalogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CatalogEntry(nil), f.entries...)
}

// ListCalls returns the recorded ListCatalog calls.
func (f *Fake) ListCalls() []ListCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ListCall(nil), f.listCalls...)
}

// RecordCalls returns how many records were fetched.
func (f *Fake) RecordCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recordCalls
}

// ListCatalog implements pokeapi.Fetcher.
func (f *Fake) ListCatalog(ctx context.Context, offset, limit int) ([]model.CatalogEntry, error) {
	if f.BeforeList != nil {
		f.BeforeList()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, ListCall{Offset: offset, Limit: limit})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if offset >= len(f.entries) {
		return []model.CatalogEntry{}, nil
	}
	end := min(offset+limit, len(f.entries))
	return append([]model.CatalogEntry(nil), f.entries[offset:end]...), nil
}

// FetchRecord implements pokeapi.Fetcher.
func (f *Fake) FetchRecord(ctx context.Context, detailURL string) (*model.CreatureRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.recordCalls++
	if err := f.failures[detailURL]; err != nil {
		return nil, err
	}
	r, ok := f.records[detailURL]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, detailURL)
	}
	return r, nil
}

// FetchRecordByName implements pokeapi.Fetcher.
func (f *Fake) FetchRecordByName(ctx context.Context, nameOrID string) (*model.CreatureRecord, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	f.mu.Lock()
	var detailURL string
	for _, e := range f.entries {
		if e.Name == key || strings.TrimSuffix(strings.TrimPrefix(e.DetailURL, BaseURL+"/pokemon/"), "/") == key {
			detailURL = e.DetailURL
			break
		}
	}
	f.mu.Unlock()

	if detailURL == "" {
		if id, err := strconv.Atoi(key); err == nil {
			detailURL = RecordURL(id)
		} else {
			detailURL = BaseURL + "/pokemon/" + key + "/"
		}
	}
	return f.FetchRecord(ctx, detailURL)
}

// FetchSpecies implements pokeapi.Fetcher.
func (f *Fake) FetchSpecies(ctx context.Context, speciesURL string) (*model.SpeciesInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failures[speciesURL]; err != nil {
		return nil, err
	}
	s, ok := f.species[speciesURL]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, speciesURL)
	}
	return s, nil
}

// FetchAbility implements pokeapi.Fetcher.
func (f *Fake) FetchAbility(ctx context.Context, abilityURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failures[abilityURL]; err != nil {
		return "", err
	}
	name, ok := f.abilities[abilityURL]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, abilityURL)
	}
	return name, nil
}

// FetchEvolutionChain implements pokeapi.Fetcher.
func (f *Fake) FetchEvolutionChain(ctx context.Context, chainURL string) (*model.EvolutionNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failures[chainURL]; err != nil {
		return nil, err
	}
	root, ok := f.chains[chainURL]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, chainURL)
	}
	return root, nil
}
