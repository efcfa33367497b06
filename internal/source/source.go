// Package source produces the integer sample streams fed into the
// filter bank: live interface byte rates where the platform provides
// counters, and a synthetic noisy signal everywhere else.
package source

import "log"

// Source delivers one signed integer sample per call. Implementations
// are polled from a single goroutine; they need not be safe for
// concurrent use.
type Source interface {
	// Name identifies the signal for display (e.g. "eth0 B/s").
	Name() string
	// Sample returns the next sample. A transient error leaves the
	// source usable; callers may retry on the next poll.
	Sample() (int64, error)
	Close() error
}

// New returns the best available source. With synthetic set (or when
// no platform byte counters can be reached) it falls back to the
// synthetic signal generator.
func New(iface string, synthetic bool) Source {
	if synthetic {
		return NewSynthetic(0)
	}
	s, err := newPlatformSource(iface)
	if err != nil {
		log.Printf("emascope: no platform byte counters, using synthetic signal: %v", err)
		return NewSynthetic(0)
	}
	return s
}
