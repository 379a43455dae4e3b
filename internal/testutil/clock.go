package testutil

import (
	"fmt"
	"sync"
	"time"
)

// Tick is the gap StubClock.Tick puts between fixture events, such as a
// mark and the post that follows it.
const Tick = time.Minute

// StubClock is a manually driven clock. Tests move it between creating
// content and marking it read. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Tick advances the clock by Tick and returns the new time.
func (c *StubClock) Tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(Tick)
	return c.now
}

// StubIDGenerator hands out "<prefix>-0001", "<prefix>-0002", ...
// The padding keeps lexical order equal to creation order, which the store
// falls back on when a FixedClock gives rows the same timestamp.
type StubIDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter int
}

// NewStubIDGenerator creates a generator for prefix; empty means "id".
func NewStubIDGenerator(prefix string) *StubIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &StubIDGenerator{prefix: prefix}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%04d", g.prefix, g.counter)
}
