package core

// limiter.go bounds how many files are profiled at the same time. Each
// profile holds its whole table in memory, so an unbounded number of
// parallel requests against large files can exhaust the process.
//
// When every slot is taken, Acquire waits up to maxWait and then fails with
// ErrTooManyProfiles. WaitForDrain lets shutdown wait for running profiles.

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyProfiles is returned when no profiling slot frees up in time.
var ErrTooManyProfiles = errors.New("too many profiles in progress, please try again later")

// DefaultMaxConcurrentProfiles is used when the configured limit is not positive.
const DefaultMaxConcurrentProfiles = 4

// DefaultMaxWaitTime is used when the configured wait is not positive.
const DefaultMaxWaitTime = 30 * time.Second

// drainPollInterval is how often WaitForDrain re-checks the active count.
const drainPollInterval = 50 * time.Millisecond

// ProfileLimiter is a counting semaphore over profile runs.
type ProfileLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

// NewProfileLimiter allows maxConcurrent simultaneous profiles; callers wait
// at most maxWait for a slot.
func NewProfileLimiter(maxConcurrent int, maxWait time.Duration) *ProfileLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentProfiles
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &ProfileLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, blocking up to maxWait. A cancelled ctx returns
// ctx.Err(); an expired wait returns ErrTooManyProfiles.
// Every successful Acquire must be paired with Release.
func (l *ProfileLimiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyProfiles
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *ProfileLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *ProfileLimiter) Release() {
	<-l.slots
}

// Active returns the number of slots in use.
func (l *ProfileLimiter) Active() int {
	return len(l.slots)
}

// MaxConcurrent returns the slot count.
func (l *ProfileLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no slot is in use or ctx is done.
func (l *ProfileLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// LimiterStatus is a point-in-time view of the limiter.
type LimiterStatus struct {
	Active        int `json:"active" yaml:"active"`
	Available     int `json:"available" yaml:"available"`
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// Status returns the current slot usage.
func (l *ProfileLimiter) Status() LimiterStatus {
	active := len(l.slots)
	return LimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
	}
}
