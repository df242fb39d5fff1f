package tor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	dexlog "github.com/nao1215/dexview/internal/log"
)

type fakeProcess struct {
	addr    string
	stopped atomic.Int32
	stopErr error
}

func (p *fakeProcess) SocksAddr() string { return p.addr }

func (p *fakeProcess) Stop() error {
	p.stopped.Add(1)
	return p.stopErr
}

func newTestDaemon(proc *fakeProcess, launchErr error, gotTimeout *time.Duration) *Daemon {
	return NewDaemon(
		WithLogger(dexlog.Discard()),
		withLauncher(func(timeout time.Duration) (process, error) {
			if gotTimeout != nil {
				*gotTimeout = timeout
			}
			if launchErr != nil {
				return nil, launchErr
			}
			return proc, nil
		}),
	)
}

func TestNewDaemon(t *testing.T) {
	t.Parallel()

	t.Run("uses the default timeout", func(t *testing.T) {
		t.Parallel()
		if d := NewDaemon(); d.startupTimeout != DefaultStartupTimeout {
			t.Errorf("expected %v, got %v", DefaultStartupTimeout, d.startupTimeout)
		}
	})

	t.Run("applies WithStartupTimeout", func(t *testing.T) {
		t.Parallel()
		if d := NewDaemon(WithStartupTimeout(5 * time.Minute)); d.startupTimeout != 5*time.Minute {
			t.Errorf("expected 5m, got %v", d.startupTimeout)
		}
	})

	t.Run("ignores a non-positive timeout", func(t *testing.T) {
		t.Parallel()
		if d := NewDaemon(WithStartupTimeout(0)); d.startupTimeout != DefaultStartupTimeout {
			t.Errorf("expected default, got %v", d.startupTimeout)
		}
	})

	t.Run("is not running before start", func(t *testing.T) {
		t.Parallel()
		d := NewDaemon()
		if d.Running() {
			t.Error("expected not running")
		}
		if _, err := d.SocksAddr(); !errors.Is(err, ErrNotRunning) {
			t.Errorf("expected ErrNotRunning, got %v", err)
		}
		if err := d.Stop(); err != nil {
			t.Errorf("expected Stop on idle daemon to succeed, got %v", err)
		}
	})
}

func TestDaemonLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("start exposes the socks address and stop clears it", func(t *testing.T) {
		t.Parallel()

		proc := &fakeProcess{addr: "127.0.0.1:40123"}
		var timeout time.Duration
		d := newTestDaemon(proc, nil, &timeout)

		if err := d.Start(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if timeout != DefaultStartupTimeout {
			t.Errorf("expected launcher to get %v, got %v", DefaultStartupTimeout, timeout)
		}
		addr, err := d.SocksAddr()
		if err != nil || addr != "127.0.0.1:40123" {
			t.Errorf("expected socks address, got %q (%v)", addr, err)
		}

		if err := d.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
			t.Errorf("expected ErrAlreadyRunning, got %v", err)
		}

		if err := d.Stop(); err != nil {
			t.Fatalf("unexpected stop error: %v", err)
		}
		if d.Running() {
			t.Error("expected not running after stop")
		}
		if proc.stopped.Load() != 1 {
			t.Errorf("expected one stop, got %d", proc.stopped.Load())
		}
	})

	t.Run("launch failure is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("tor binary not found")
		d := newTestDaemon(nil, boom, nil)
		if err := d.Start(context.Background()); !errors.Is(err, boom) {
			t.Errorf("expected launch error, got %v", err)
		}
		if d.Running() {
			t.Error("expected not running")
		}
	})

	t.Run("cancelled context stops the process", func(t *testing.T) {
		t.Parallel()

		proc := &fakeProcess{addr: "127.0.0.1:1"}
		d := newTestDaemon(proc, nil, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := d.Start(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if proc.stopped.Load() != 1 {
			t.Error("expected the started process to be stopped")
		}
		if d.Running() {
			t.Error("expected not running")
		}
	})
}
