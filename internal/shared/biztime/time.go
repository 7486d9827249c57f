// Package biztime centralizes wall-clock access so storage always sees UTC.
package biztime

import (
	"sync"
	"time"
)

var (
	nowMu sync.RWMutex
	nowFn = time.Now
)

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	nowMu.RLock()
	defer nowMu.RUnlock()
	return nowFn().UTC()
}

// SetClock replaces the time source and returns a function restoring the previous one.
func SetClock(fn func() time.Time) (restore func()) {
	nowMu.Lock()
	prev := nowFn
	nowFn = fn
	nowMu.Unlock()
	return func() {
		nowMu.Lock()
		nowFn = prev
		nowMu.Unlock()
	}
}
