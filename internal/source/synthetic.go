package source

import (
	"math/rand"
	"time"
)

const (
	synthMax   = 1000 // baseline signal range [0, synthMax]
	synthNoise = 50   // per-sample jitter around the baseline
	synthSpike = 900  // amplitude of occasional spikes
)

// Synthetic generates a noisy random-walk signal in [0, synthMax],
// with occasional upward spikes so the smoothing response is visible.
// It is the demo signal when no platform counters are available.
type Synthetic struct {
	rng      *rand.Rand
	baseline int64
}

// NewSynthetic creates a generator. A non-zero seed makes the signal
// deterministic, which the tests rely on; seed 0 selects a time-based
// seed.
func NewSynthetic(seed int64) *Synthetic {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Synthetic{
		rng:      rand.New(rand.NewSource(seed)),
		baseline: synthMax / 2,
	}
}

func (s *Synthetic) Name() string { return "synthetic" }

// Sample returns the next sample: baseline random walk plus jitter,
// with a spike roughly every 50 samples. Values stay within
// [0, synthMax+synthSpike].
func (s *Synthetic) Sample() (int64, error) {
	s.baseline += s.rng.Int63n(2*synthNoise+1) - synthNoise
	if s.baseline < 0 {
		s.baseline = 0
	}
	if s.baseline > synthMax {
		s.baseline = synthMax
	}

	v := s.baseline + s.rng.Int63n(2*synthNoise+1) - synthNoise
	if s.rng.Intn(50) == 0 {
		v += s.rng.Int63n(synthSpike)
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}

func (s *Synthetic) Close() error { return nil }
