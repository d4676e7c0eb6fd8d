package shared

import (
	"sync"
	"time"
)

// Clock is the only source of "now" for energy, durations and due checks
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock reads the system time in UTC
type RealClock struct{}

func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

func (r *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock is a manually driven clock. It is safe to advance from a test
// while a sweep goroutine reads it.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock starts a MockClock at start, or at the current time when
// start is zero
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Sleep advances the clock instead of blocking, so placement backoff is
// instant in tests
func (m *MockClock) Sleep(d time.Duration) {
	m.Advance(d)
}

// Advance moves the clock forward; assignments become due without waiting
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// SetTime jumps the clock to t
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
