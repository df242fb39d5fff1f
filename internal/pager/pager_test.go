package pager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/log"
	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pokeapi/pokeapitest"
	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newCatalog returns a fake catalog of n records named "mon-1".."mon-n".
func newCatalog(n int) *pokeapitest.Fake {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("mon-%d", i+1)
	}
	return pokeapitest.NewWithNames(names...)
}

func newController(f *pokeapitest.Fake, opts ...Option) (*Controller, *report.TerminalRenderer) {
	r := report.NewTerminalRenderer(&bytes.Buffer{})
	opts = append([]Option{WithLogger(log.Discard())}, opts...)
	return New(f, r, session.New(20), opts...), r
}

func ids(items []model.ListItem) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// TestControllerScenario walks a 25-entry catalog with a page size of 20.
func TestControllerScenario(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		policy     config.AdvancePolicy
		wantOffset int
	}{
		{name: "advance by limit", policy: config.AdvanceByLimit, wantOffset: 40},
		{name: "advance by count", policy: config.AdvanceByCount, wantOffset: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newCatalog(25)
			c, r := newController(f, WithAdvancePolicy(tt.policy))
			ctx := context.Background()

			if err := c.LoadInitialPage(ctx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(seq(1, 20), ids(r.Items())); diff != "" {
				t.Errorf("initial rows mismatch (-want +got):\n%s", diff)
			}
			if got := c.Session().Offset(); got != 20 {
				t.Errorf("expected offset 20 after initial load, got %d", got)
			}
			if !c.Session().Armed() {
				t.Error("expected scrolling to be armed")
			}
			if r.Loading() {
				t.Error("loading indicator should be hidden")
			}

			ran, err := c.LoadNextPage(ctx)
			if err != nil || !ran {
				t.Fatalf("expected page load, got ran=%v err=%v", ran, err)
			}
			if diff := cmp.Diff(seq(1, 25), ids(r.Items())); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
			if got := c.Session().Offset(); got != tt.wantOffset {
				t.Errorf("expected offset %d, got %d", tt.wantOffset, got)
			}

			want := []pokeapitest.ListCall{{Offset: 0, Limit: 20}, {Offset: 20, Limit: 20}}
			if diff := cmp.Diff(want, f.ListCalls()); diff != "" {
				t.Errorf("listing calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestLoadNextPageBusy checks that a load while busy is a no-op.
func TestLoadNextPageBusy(t *testing.T) {
	t.Parallel()

	f := newCatalog(25)
	c, r := newController(f)
	ctx := context.Background()

	if err := c.LoadInitialPage(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.Session().TryBegin() {
		t.Fatal("could not mark session busy")
	}
	ran, err := c.LoadNextPage(ctx)
	c.Session().End()

	if err != nil || ran {
		t.Errorf("expected no-op, got ran=%v err=%v", ran, err)
	}
	if got := c.Session().Offset(); got != 20 {
		t.Errorf("offset changed while busy: %d", got)
	}
	if got := len(r.Items()); got != 20 {
		t.Errorf("rows changed while busy: %d", got)
	}
	if got := len(f.ListCalls()); got != 1 {
		t.Errorf("expected no listing while busy, got %d calls", got)
	}
}

// TestLoadNextPageConcurrent checks that overlapping triggers load one page.
func TestLoadNextPageConcurrent(t *testing.T) {
	t.Parallel()

	f := newCatalog(60)
	c, r := newController(f)
	ctx := context.Background()
	if err := c.LoadInitialPage(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	f.BeforeList = func() {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := c.LoadNextPage(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-entered
	ran, err := c.LoadNextPage(ctx)
	if ran || err != nil {
		t.Errorf("second load should be dropped, got ran=%v err=%v", ran, err)
	}
	close(release)
	wg.Wait()

	if got := len(r.Items()); got != 40 {
		t.Errorf("expected 40 rows, got %d", got)
	}
	if c.Session().Busy() {
		t.Error("busy flag should be released")
	}
}

// TestLoadFailures checks that failures leave the cursor untouched.
func TestLoadFailures(t *testing.T) {
	t.Parallel()

	t.Run("listing failure", func(t *testing.T) {
		t.Parallel()

		f := newCatalog(25)
		c, r := newController(f)
		ctx := context.Background()
		if err := c.LoadInitialPage(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		failure := errors.New("service down")
		f.FailList(failure)

		ran, err := c.LoadNextPage(ctx)
		if !ran || !errors.Is(err, failure) {
			t.Fatalf("expected %v, got ran=%v err=%v", failure, ran, err)
		}
		if got := c.Session().Offset(); got != 20 {
			t.Errorf("offset advanced on failure: %d", got)
		}
		if c.Session().Busy() || r.Loading() {
			t.Error("busy flag and loading indicator should be released")
		}

		f.FailList(nil)
		if _, err := c.LoadNextPage(ctx); err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if got := len(r.Items()); got != 25 {
			t.Errorf("expected 25 rows after retry, got %d", got)
		}
	})

	t.Run("one record failure appends nothing", func(t *testing.T) {
		t.Parallel()

		f := newCatalog(25)
		c, r := newController(f)
		ctx := context.Background()
		if err := c.LoadInitialPage(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.Fail(pokeapitest.RecordURL(23), errors.New("record gone"))

		if _, err := c.LoadNextPage(ctx); err == nil {
			t.Fatal("expected error")
		}
		if got := len(r.Items()); got != 20 {
			t.Errorf("expected no rows appended, got %d", got)
		}
		if got := c.Session().Offset(); got != 20 {
			t.Errorf("offset advanced on failure: %d", got)
		}
	})

	t.Run("initial failure keeps list", func(t *testing.T) {
		t.Parallel()

		f := newCatalog(5)
		c, r := newController(f)
		r.Append(model.ListItem{ID: 99})
		f.FailList(errors.New("down"))

		if err := c.LoadInitialPage(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if diff := cmp.Diff([]int{99}, ids(r.Items())); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
		if c.Session().Armed() {
			t.Error("scrolling should stay disarmed")
		}
		if r.Loading() {
			t.Error("loading indicator should be hidden")
		}
	})
}

// TestShouldLoad tests the scroll threshold.
func TestShouldLoad(t *testing.T) {
	t.Parallel()

	c, _ := newController(newCatalog(1))

	tests := []struct {
		name string
		m    ScrollMetrics
		want bool
	}{
		{name: "far from end", m: ScrollMetrics{Top: 0, Height: 2000, ClientHeight: 600}, want: false},
		{name: "exactly at threshold", m: ScrollMetrics{Top: 1300, Height: 2000, ClientHeight: 600}, want: true},
		{name: "one short of threshold", m: ScrollMetrics{Top: 1299, Height: 2000, ClientHeight: 600}, want: false},
		{name: "at the end", m: ScrollMetrics{Top: 1400, Height: 2000, ClientHeight: 600}, want: true},
		{name: "content shorter than window", m: ScrollMetrics{Top: 0, Height: 300, ClientHeight: 600}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := c.ShouldLoad(tt.m); got != tt.want {
				t.Errorf("ShouldLoad(%+v) = %v, expected %v", tt.m, got, tt.want)
			}
		})
	}
}

// TestOnScroll tests scroll-driven loading.
func TestOnScroll(t *testing.T) {
	t.Parallel()

	near := ScrollMetrics{Top: 1400, Height: 2000, ClientHeight: 600}
	far := ScrollMetrics{Top: 0, Height: 2000, ClientHeight: 600}

	t.Run("not armed before initial load", func(t *testing.T) {
		t.Parallel()

		c, _ := newController(newCatalog(25))
		if _, err := c.OnScroll(context.Background(), near); !errors.Is(err, ErrNotArmed) {
			t.Errorf("expected ErrNotArmed, got %v", err)
		}
	})

	t.Run("loads only near the end", func(t *testing.T) {
		t.Parallel()

		c, r := newController(newCatalog(25), WithThreshold(100))
		ctx := context.Background()
		if err := c.LoadInitialPage(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if ran, err := c.OnScroll(ctx, far); ran || err != nil {
			t.Errorf("expected no load far from end, got ran=%v err=%v", ran, err)
		}
		if ran, err := c.OnScroll(ctx, near); !ran || err != nil {
			t.Errorf("expected load near end, got ran=%v err=%v", ran, err)
		}
		if got := len(r.Items()); got != 25 {
			t.Errorf("expected 25 rows, got %d", got)
		}
	})
}
