// Package session holds the mutable state of one viewing session: the
// pagination cursor, the busy flag that serialises page loads, whether
// scroll-driven loading is armed, and the current selection.
//
// All methods are safe for concurrent use. The busy flag is an atomic
// try-acquire so that a scroll event arriving while a page is loading
// is dropped instead of queued.
package session

import (
	"sync"
	"sync/atomic"
)

// Session is the per-viewer state.
type Session struct {
	busy atomic.Bool

	mu       sync.Mutex
	offset   int
	limit    int
	armed    bool
	selected int
	hasSel   bool
}

// New creates a Session with offset 0 and the given page size.
// A non-positive limit is replaced by 1.
func New(limit int) *Session {
	if limit <= 0 {
		limit = 1
	}
	return &Session{limit: limit}
}

// TryBegin marks the session busy. It returns false, leaving the state
// untouched, if the session is already busy.
func (s *Session) TryBegin() bool {
	return s.busy.CompareAndSwap(false, true)
}

// End clears the busy flag.
func (s *Session) End() {
	s.busy.Store(false)
}

// Busy reports whether a page load is in progress.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Offset returns the catalog position of the next page.
func (s *Session) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Limit returns the page size.
func (s *Session) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// Advance moves the offset forward by n. Negative n is ignored.
func (s *Session) Advance(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset += n
}

// Reset sets the offset. Negative values are clamped to 0.
func (s *Session) Reset(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = max(offset, 0)
}

// Arm enables scroll-driven loading.
func (s *Session) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
}

// Armed reports whether scroll-driven loading is enabled.
func (s *Session) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Select records id as the current selection and returns the previous one.
func (s *Session) Select(id int) (prev int, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, hadPrev = s.selected, s.hasSel
	s.selected, s.hasSel = id, true
	return prev, hadPrev
}

// Selected returns the current selection, if any.
func (s *Session) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.hasSel
}
