// Package config provides configuration structures and utilities for dexview.
// It defines where the catalog service lives, how pages and searches are
// sized, and how the HTTP client and detail assembly behave.
package config
