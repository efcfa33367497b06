// Package shiftema implements a fixed-point exponential moving average
// for integer sample streams. The filter uses only integer add/subtract
// and power-of-two bit shifts — no floating point, no multiply/divide,
// no allocation — so results are bit-exact and cheap enough for hot
// paths and resource-constrained targets.
//
// The new-sample weight is 1/2^k, selected by a Smoothing value. The
// accumulator keeps extra fractional bits internally (scale bits) so
// the fractional weight does not collapse to zero through integer
// truncation, and read-out rounds to nearest.
package shiftema

import "strconv"

// Smoothing selects the filter's time constant. A Smoothing value k
// gives each new sample a weight of 1/2^k: higher values smooth more
// and respond slower. Only these power-of-two selectors are valid.
type Smoothing int

const (
	Smoothing1   Smoothing = iota // divisor 1, pass-through
	Smoothing2                    // divisor 2
	Smoothing4                    // divisor 4
	Smoothing8                    // divisor 8
	Smoothing16                   // divisor 16
	Smoothing32                   // divisor 32
	Smoothing64                   // divisor 64
	Smoothing128                  // divisor 128
	Smoothing256                  // divisor 256
	Smoothing512                  // divisor 512
)

// DefaultScaleBits is the number of fractional bits kept in the
// accumulator when none is specified.
const DefaultScaleBits = 4

// Divisor returns the effective divisor 2^k.
func (s Smoothing) Divisor() int64 {
	return 1 << uint(clampSmoothing(s))
}

// String returns the sample weight as a fraction, e.g. "1/16".
func (s Smoothing) String() string {
	return "1/" + strconv.FormatInt(s.Divisor(), 10)
}

func clampSmoothing(s Smoothing) Smoothing {
	if s < Smoothing1 {
		return Smoothing1
	}
	if s > Smoothing512 {
		return Smoothing512
	}
	return s
}

// EMA is a fixed-point exponential moving average filter. The zero
// value is not usable; create instances with New or NewWithScale.
//
// An EMA is not safe for concurrent use. Callers that feed it from
// multiple goroutines (or, on bare-metal targets, from an interrupt
// and a main loop) must serialize access externally.
type EMA struct {
	smoothing Smoothing
	scaleBits uint
	acc       int64 // current estimate scaled by 2^scaleBits
	primed    bool
}

// New creates a filter with the given smoothing selector and
// DefaultScaleBits fractional bits.
func New(s Smoothing) *EMA {
	return NewWithScale(s, DefaultScaleBits)
}

// NewWithScale creates a filter with an explicit number of fractional
// accumulator bits. Out-of-range configuration is clamped rather than
// rejected: a smoothing selector outside [Smoothing1, Smoothing512]
// saturates to the nearest bound, and scaleBits of 0 becomes
// DefaultScaleBits so the rounding term 1<<(scaleBits-1) stays
// well-defined.
func NewWithScale(s Smoothing, scaleBits uint) *EMA {
	if scaleBits < 1 {
		scaleBits = DefaultScaleBits
	}
	return &EMA{
		smoothing: clampSmoothing(s),
		scaleBits: scaleBits,
	}
}

// Update ingests one sample. The first sample after construction or
// Reset seeds the filter directly, so there is no cold-start lag
// toward zero. Every later sample applies
//
//	acc = acc - acc>>k + (sample<<scaleBits)>>k
//
// which is ema += (sample-ema)/2^k computed on the scaled accumulator.
//
// Samples must satisfy |sample| < 2^(63-scaleBits-1) so that
// sample<<scaleBits cannot overflow; larger inputs silently wrap.
func (e *EMA) Update(sample int64) {
	scaled := sample << e.scaleBits
	if !e.primed {
		e.acc = scaled
		e.primed = true
		return
	}
	k := uint(e.smoothing)
	e.acc = e.acc - e.acc>>k + scaled>>k
}

// Next ingests one sample and returns the updated rounded estimate.
// Equivalent to Update followed by Value.
func (e *EMA) Next(sample int64) int64 {
	e.Update(sample)
	return e.Value()
}

// Value returns the current estimate in the caller's units, rounded to
// nearest rather than truncated. It does not mutate the filter:
// repeated calls without an intervening Update return the same value.
// Before the first sample it reports 0.
func (e *EMA) Value() int64 {
	return (e.acc + 1<<(e.scaleBits-1)) >> e.scaleBits
}

// Scaled returns the raw accumulator, i.e. the current estimate
// multiplied by 2^ScaleBits, for callers that want the full internal
// precision without the read-out rounding.
func (e *EMA) Scaled() int64 {
	return e.acc
}

// ScaleBits returns the number of fractional bits in the accumulator.
func (e *EMA) ScaleBits() uint {
	return e.scaleBits
}

// Smoothing returns the configured smoothing selector.
func (e *EMA) Smoothing() Smoothing {
	return e.smoothing
}

// Primed reports whether at least one sample has been ingested since
// construction or the last Reset.
func (e *EMA) Primed() bool {
	return e.primed
}

// Reset discards the accumulator and returns the filter to its
// unprimed state. Configuration is untouched: the next Update seeds
// exactly like the first-ever sample.
func (e *EMA) Reset() {
	e.primed = false
	e.acc = 0
}
