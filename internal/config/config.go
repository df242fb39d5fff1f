package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the root of the public catalog REST service.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultPageLimit is the number of entries fetched per page.
	DefaultPageLimit = 20

	// DefaultCatalogSize is the listing size requested when building the
	// search index. It encodes the catalog size known when the viewer was
	// written and must be raised when the catalog grows.
	DefaultCatalogSize = 898

	// DefaultScrollThreshold is the remaining scroll distance, in pixels,
	// below which the next page is requested.
	DefaultScrollThreshold = 100

	// DefaultTimeout bounds every single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of record fetches in flight per batch.
	DefaultConcurrency = 10

	// DefaultUserAgent identifies dexview in HTTP requests.
	DefaultUserAgent = "dexview/1.0 (+https://github.com/nao1215/dexview)"

	// DefaultMaxBodySize limits the response body size read per request.
	// Full records are the largest payloads and stay well below 1MB.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultArtworkTemplate is the external image-hosting template for
	// evolution stage artwork. %s is replaced by the catalog identifier.
	DefaultArtworkTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%s.png"

	// DefaultIconGeneration is the sprite version key holding list icons.
	DefaultIconGeneration = "generation-viii"

	// DefaultTorStartupTimeout bounds the bootstrap of the embedded Tor
	// daemon. Bootstrapping usually takes 1-3 minutes.
	DefaultTorStartupTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "dexview"
)

// AdvancePolicy selects how the pagination offset moves after a page.
type AdvancePolicy string

const (
	// AdvanceByLimit moves the offset by the page limit regardless of how
	// many entries came back.
	AdvanceByLimit AdvancePolicy = "limit"

	// AdvanceByCount moves the offset by the number of entries returned.
	AdvanceByCount AdvancePolicy = "count"
)

// Config holds all configuration options for dexview.
// It is populated from defaults, the configuration file, environment
// variables and CLI flags, in that order, and passed by pointer to the
// components that need it.
type Config struct {
	// BaseURL is the catalog service root, without a trailing slash.
	BaseURL string `yaml:"base_url" koanf:"base_url"`

	// PageLimit is the number of entries per page.
	PageLimit int `yaml:"page_limit" koanf:"page_limit"`

	// CatalogSize is the listing size used to build the search index.
	CatalogSize int `yaml:"catalog_size" koanf:"catalog_size"`

	// ScrollThreshold is the remaining distance in pixels that triggers
	// the next page load.
	ScrollThreshold int `yaml:"scroll_threshold" koanf:"scroll_threshold"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`

	// Concurrency is the number of concurrent record fetches per batch.
	Concurrency int `yaml:"concurrency" koanf:"concurrency"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `yaml:"user_agent" koanf:"user_agent"`

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64 `yaml:"max_body_size" koanf:"max_body_size"`

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string `yaml:"proxy_address,omitempty" koanf:"proxy_address"`

	// Headers are extra HTTP headers added to every request,
	// e.g. for a self-hosted mirror behind an API gateway.
	Headers map[string]string `yaml:"headers,omitempty" koanf:"headers"`

	// AdvancePolicy selects how the page offset advances.
	AdvancePolicy AdvancePolicy `yaml:"advance_policy" koanf:"advance_policy"`

	// LenientDetail lets detail assembly continue past a failing step,
	// leaving that step's fields empty. When false, the first failure
	// aborts the whole detail view.
	LenientDetail bool `yaml:"lenient_detail" koanf:"lenient_detail"`

	// ArtworkTemplate is the printf template for evolution artwork URLs.
	ArtworkTemplate string `yaml:"artwork_template" koanf:"artwork_template"`

	// IconGeneration is the sprite version key used for list icons.
	IconGeneration string `yaml:"icon_generation" koanf:"icon_generation"`

	// EmbeddedTor starts a Tor daemon and routes every request through
	// its SOCKS5 port. It cannot be combined with ProxyAddress.
	EmbeddedTor bool `yaml:"embedded_tor" koanf:"embedded_tor"`

	// TorStartupTimeout bounds the embedded Tor bootstrap.
	TorStartupTimeout time.Duration `yaml:"tor_startup_timeout" koanf:"tor_startup_timeout"`

	// Verbose enables debug logging. Never written to the config file.
	Verbose bool `yaml:"-" koanf:"verbose"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		PageLimit:       DefaultPageLimit,
		CatalogSize:     DefaultCatalogSize,
		ScrollThreshold: DefaultScrollThreshold,
		Timeout:         DefaultTimeout,
		Concurrency:     DefaultConcurrency,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		AdvancePolicy:   AdvanceByLimit,
		ArtworkTemplate: DefaultArtworkTemplate,
		IconGeneration:  DefaultIconGeneration,

		TorStartupTimeout: DefaultTorStartupTimeout,
	}
}

// XDGDataDir returns the XDG data directory for dexview.
// On Linux: ~/.local/share/dexview
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for dexview.
// On Linux: ~/.config/dexview
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinel errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	if c.PageLimit <= 0 {
		return ErrInvalidPageLimit
	}
	if c.CatalogSize <= 0 {
		return ErrInvalidCatalogSize
	}
	if c.ScrollThreshold < 0 {
		return ErrInvalidScrollThreshold
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	switch c.AdvancePolicy {
	case AdvanceByLimit, AdvanceByCount:
	default:
		return ErrInvalidAdvancePolicy
	}
	if c.ArtworkTemplate == "" {
		return ErrEmptyArtworkTemplate
	}
	if c.EmbeddedTor {
		if c.ProxyAddress != "" {
			return ErrProxyConflict
		}
		if c.TorStartupTimeout <= 0 {
			return ErrInvalidTorStartupTimeout
		}
	}
	return nil
}
