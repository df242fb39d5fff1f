package tor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/tornago"
)

// DefaultStartupTimeout bounds the bootstrap when no timeout is set.
const DefaultStartupTimeout = 3 * time.Minute

// process is the part of a tornago process the daemon uses.
type process interface {
	SocksAddr() string
	Stop() error
}

// launchFunc starts a Tor process bound to random local ports.
type launchFunc func(startupTimeout time.Duration) (process, error)

// Daemon manages one embedded Tor process.
type Daemon struct {
	mu             sync.Mutex
	proc           process
	socksAddr      string
	startupTimeout time.Duration
	launch         launchFunc
	logger         *slog.Logger
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithStartupTimeout sets the maximum time to wait for Tor to bootstrap.
// Non-positive values are ignored.
func WithStartupTimeout(timeout time.Duration) Option {
	return func(d *Daemon) {
		if timeout > 0 {
			d.startupTimeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Daemon) {
		d.logger = logger
	}
}

// withLauncher replaces the tornago launcher in tests.
func withLauncher(fn launchFunc) Option {
	return func(d *Daemon) {
		d.launch = fn
	}
}

// NewDaemon creates a Daemon. Call Start to launch Tor.
func NewDaemon(opts ...Option) *Daemon {
	d := &Daemon{
		startupTimeout: DefaultStartupTimeout,
		launch:         launchTornago,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// launchTornago starts a tornago daemon with OS-assigned ports.
func launchTornago(startupTimeout time.Duration) (process, error) {
	cfg, err := tornago.NewTorLaunchConfig(
		tornago.WithTorSocksAddr(":0"),
		tornago.WithTorControlAddr(":0"),
		tornago.WithTorStartupTimeout(startupTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Tor launch config: %w", err)
	}
	proc, err := tornago.StartTorDaemon(cfg)
	if err != nil {
		return nil, err
	}
	return proc, nil
}

// Start launches Tor and blocks until it has bootstrapped or the startup
// timeout expires. If ctx is cancelled during startup the process is
// stopped and ctx.Err() is returned.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.proc != nil {
		return ErrAlreadyRunning
	}

	d.logger.Info("starting embedded Tor", "startup_timeout", d.startupTimeout)
	started := time.Now()

	proc, err := d.launch(d.startupTimeout)
	if err != nil {
		return fmt.Errorf("failed to start embedded Tor daemon: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = proc.Stop() //nolint:errcheck // best effort
		return err
	}

	d.proc = proc
	d.socksAddr = proc.SocksAddr()
	d.logger.Info("embedded Tor ready",
		"socks", d.socksAddr,
		"elapsed", time.Since(started).Round(time.Second),
	)
	return nil
}

// Stop shuts the daemon down. Stopping a daemon that is not running is
// a no-op.
func (d *Daemon) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.proc == nil {
		return nil
	}
	err := d.proc.Stop()
	d.proc = nil
	d.socksAddr = ""
	return err
}

// Running reports whether the daemon has started and not been stopped.
func (d *Daemon) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.proc != nil
}

// SocksAddr returns the "host:port" SOCKS5 address of the running
// daemon, or ErrNotRunning.
func (d *Daemon) SocksAddr() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.proc == nil {
		return "", ErrNotRunning
	}
	return d.socksAddr, nil
}
