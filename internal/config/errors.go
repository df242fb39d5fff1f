package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers can match them with errors.Is.
var (
	// ErrEmptyBaseURL is returned when no catalog service URL is configured.
	ErrEmptyBaseURL = errors.New("base URL must not be empty")

	// ErrInvalidPageLimit is returned when the page limit is not positive.
	ErrInvalidPageLimit = errors.New("invalid page limit: must be positive")

	// ErrInvalidCatalogSize is returned when the search listing size is not positive.
	ErrInvalidCatalogSize = errors.New("invalid catalog size: must be positive")

	// ErrInvalidScrollThreshold is returned when the scroll threshold is negative.
	ErrInvalidScrollThreshold = errors.New("invalid scroll threshold: must be non-negative")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidAdvancePolicy is returned for an unknown advance policy.
	ErrInvalidAdvancePolicy = errors.New(`invalid advance policy: must be "limit" or "count"`)

	// ErrEmptyArtworkTemplate is returned when no artwork template is configured.
	ErrEmptyArtworkTemplate = errors.New("artwork template must not be empty")

	// ErrProxyConflict is returned when both an explicit proxy and the
	// embedded Tor daemon are configured.
	ErrProxyConflict = errors.New("proxy_address and embedded_tor are mutually exclusive")

	// ErrInvalidTorStartupTimeout is returned when the embedded Tor
	// bootstrap timeout is not positive.
	ErrInvalidTorStartupTimeout = errors.New("invalid tor startup timeout: must be positive")

	// ErrConfigNotFound is returned when an explicitly named configuration
	// file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
