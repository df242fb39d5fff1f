// Package log provides dexview's structured logging, built on log/slog.
//
// SecureHandler wraps any slog.Handler and masks credential-bearing values
// before they are written: custom request headers (Authorization, API keys,
// cookies) configured for catalog mirrors, and user-info embedded in proxy
// or service URLs. Everything else passes through unchanged.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose, false)
//	logger.Debug("request sent", "url", u, "authorization", h) // authorization is masked
//	slog.SetDefault(logger)
package log
