package rapidapi

import (
	"sync"
	"time"
)

// Clock schedules the waits between attempts.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// SystemClock waits in real time.
var SystemClock Clock = systemClock{}

// SimulatedClock never actually waits, it only adds up how long it was
// asked to wait. It is safe for concurrent use.
type SimulatedClock struct {
	mutex   sync.Mutex
	elapsed time.Duration
	waits   []time.Duration
}

func (c *SimulatedClock) After(d time.Duration) <-chan time.Time {
	c.mutex.Lock()
	c.elapsed += d
	c.waits = append(c.waits, d)
	c.mutex.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Time{}.Add(d)
	return ch
}

// Elapsed is the sum of every wait so far.
func (c *SimulatedClock) Elapsed() time.Duration {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.elapsed
}

// Waits lists every wait in the order it was requested.
func (c *SimulatedClock) Waits() []time.Duration {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	out := make([]time.Duration, len(c.waits))
	copy(out, c.waits)
	return out
}

// clockTimer adapts a Clock to backoff.Timer.
type clockTimer struct {
	clock Clock
	c     <-chan time.Time
}

func (t *clockTimer) Start(d time.Duration) {
	t.c = t.clock.After(d)
}

func (t *clockTimer) Stop() {}

func (t *clockTimer) C() <-chan time.Time {
	return t.c
}
