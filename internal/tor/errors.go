package tor

import "errors"

var (
	// ErrNotRunning is returned when the daemon is used before Start
	// succeeded or after Stop.
	ErrNotRunning = errors.New("embedded Tor daemon is not running")

	// ErrAlreadyRunning is returned by Start on a running daemon.
	ErrAlreadyRunning = errors.New("embedded Tor daemon is already running")
)
