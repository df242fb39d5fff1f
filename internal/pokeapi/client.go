package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/model"
)

// Fetcher is the catalog data source consumed by the pager, the search
// engine and the detail assembler.
type Fetcher interface {
	// ListCatalog returns up to limit entries starting at offset.
	ListCatalog(ctx context.Context, offset, limit int) ([]model.CatalogEntry, error)

	// FetchRecord returns the record behind an entry's detail URL.
	FetchRecord(ctx context.Context, detailURL string) (*model.CreatureRecord, error)

	// FetchRecordByName returns the record for a name or numeric identifier.
	FetchRecordByName(ctx context.Context, nameOrID string) (*model.CreatureRecord, error)

	// FetchSpecies returns the species behind a record's species URL.
	FetchSpecies(ctx context.Context, speciesURL string) (*model.SpeciesInfo, error)

	// FetchAbility returns the name of the ability at abilityURL.
	FetchAbility(ctx context.Context, abilityURL string) (string, error)

	// FetchEvolutionChain returns the root of the evolution tree.
	FetchEvolutionChain(ctx context.Context, chainURL string) (*model.EvolutionNode, error)
}

// Client is the HTTP implementation of Fetcher.
type Client struct {
	// baseURL is the service root without a trailing slash.
	baseURL string

	// httpClient performs the requests.
	httpClient *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps the bytes read from one response.
	maxBodySize int64

	// headers are extra request headers.
	headers map[string]string

	// iconGeneration selects the sprite version used for list icons.
	iconGeneration string

	// logger receives request-level debug logs.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. one built by NewHTTPClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size. Zero keeps the default.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithHeaders sets extra headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithIconGeneration sets the sprite version key used for list icons.
func WithIconGeneration(gen string) Option {
	return func(c *Client) {
		c.iconGeneration = gen
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: config.DefaultTimeout},
		userAgent:      config.DefaultUserAgent,
		maxBodySize:    config.DefaultMaxBodySize,
		iconGeneration: config.DefaultIconGeneration,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// NewClientFromConfig creates a Client with the transport, headers and
// limits described by cfg.
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	hc, err := NewHTTPClient(cfg.Timeout, cfg.ProxyAddress, cfg.Headers)
	if err != nil {
		return nil, err
	}
	return NewClient(cfg.BaseURL,
		WithHTTPClient(hc),
		WithUserAgent(cfg.UserAgent),
		WithMaxBodySize(cfg.MaxBodySize),
		WithIconGeneration(cfg.IconGeneration),
		WithLogger(logger),
	), nil
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListCatalog implements Fetcher.
func (c *Client) ListCatalog(ctx context.Context, offset, limit int) ([]model.CatalogEntry, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	listURL := c.baseURL + "/pokemon?" + q.Encode()

	var body listResponse
	if err := c.getJSON(ctx, listURL, &body); err != nil {
		return nil, err
	}

	entries := make([]model.CatalogEntry, 0, len(body.Results))
	for _, r := range body.Results {
		entries = append(entries, model.CatalogEntry{Name: r.Name, DetailURL: r.URL})
	}
	return entries, nil
}

// FetchRecord implements Fetcher.
func (c *Client) FetchRecord(ctx context.Context, detailURL string) (*model.CreatureRecord, error) {
	var body pokemonResponse
	if err := c.getJSON(ctx, detailURL, &body); err != nil {
		return nil, err
	}
	return body.toRecord(c.iconGeneration), nil
}

// FetchRecordByName implements Fetcher. Names are matched lower-cased.
func (c *Client) FetchRecordByName(ctx context.Context, nameOrID string) (*model.CreatureRecord, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return nil, ErrEmptyURL
	}
	return c.FetchRecord(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key)+"/")
}

// FetchSpecies implements Fetcher.
func (c *Client) FetchSpecies(ctx context.Context, speciesURL string) (*model.SpeciesInfo, error) {
	var body speciesResponse
	if err := c.getJSON(ctx, speciesURL, &body); err != nil {
		return nil, err
	}

	info := &model.SpeciesInfo{
		EggGroups:         make([]string, 0, len(body.EggGroups)),
		EvolutionChainURL: body.EvolutionChain.URL,
	}
	for _, g := range body.EggGroups {
		info.EggGroups = append(info.EggGroups, g.Name)
	}
	return info, nil
}

// FetchAbility implements Fetcher.
func (c *Client) FetchAbility(ctx context.Context, abilityURL string) (string, error) {
	var body abilityResponse
	if err := c.getJSON(ctx, abilityURL, &body); err != nil {
		return "", err
	}
	return body.Name, nil
}

// FetchEvolutionChain implements Fetcher.
func (c *Client) FetchEvolutionChain(ctx context.Context, chainURL string) (*model.EvolutionNode, error) {
	var body evolutionChainResponse
	if err := c.getJSON(ctx, chainURL, &body); err != nil {
		return nil, err
	}
	if body.Chain.Species.Name == "" {
		return nil, fmt.Errorf("%w: evolution chain %s has no root species", ErrMalformedResponse, chainURL)
	}
	return body.Chain.toNode(), nil
}

// getJSON performs a GET and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, resourceURL string, v any) error {
	if resourceURL == "" {
		return ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", resourceURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", resourceURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("fetched resource",
		"url", resourceURL,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return &StatusError{URL: resourceURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return fmt.Errorf("reading %s: %w", resourceURL, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, resourceURL, err)
	}
	return nil
}
