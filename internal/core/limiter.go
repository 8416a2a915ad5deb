package core

// limiter.go bounds how many pipeline runs parse files at the same time.
//
// Every interaction re-reads the whole upload, so a burst of clicks across
// sessions can hold many parsed copies in memory at once. The limiter is a
// semaphore: a run that cannot get a slot within maxWait fails with
// ErrBusy instead of queueing forever. WaitForDrain lets shutdown wait for
// in-flight runs.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when no pipeline slot frees up in time.
var ErrBusy = errors.New("too many pipeline runs in progress")

// Defaults used when the configured values are not positive.
const (
	DefaultMaxConcurrentRuns = 4
	DefaultMaxWait           = 10 * time.Second
)

// Limiter caps concurrent pipeline runs.
type Limiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int

	// onChange observes the active count, e.g. to export it as a gauge.
	onChange func(active int)
}

// NewLimiter creates a limiter allowing maxConcurrent simultaneous runs.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRuns
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &Limiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// OnChange registers fn to be called with the active count after every
// acquire and release.
func (l *Limiter) OnChange(fn func(active int)) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Acquire waits for a slot. The caller must Release after a nil return.
func (l *Limiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.adjust(1)
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *Limiter) TryAcquire() bool {
	select {
	case l.semaphore <- struct{}{}:
		l.adjust(1)
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *Limiter) Release() {
	l.adjust(-1)
	<-l.semaphore
}

func (l *Limiter) adjust(delta int) {
	l.mu.Lock()
	l.active += delta
	active := l.active
	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn(active)
	}
}

// ActiveCount returns the number of runs holding a slot.
func (l *Limiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *Limiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until no run holds a slot or ctx ends.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// LimiterStatus is a snapshot for health output.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *Limiter) Status() LimiterStatus {
	return LimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: cap(l.semaphore),
	}
}
