package collector

import (
	"testing"
	"time"

	"github.com/googlesky/shiftema"
)

// stubSource returns a fixed value on every poll.
type stubSource struct{ v int64 }

func (s *stubSource) Name() string           { return "stub" }
func (s *stubSource) Sample() (int64, error) { return s.v, nil }
func (s *stubSource) Close() error           { return nil }

func ingestAll(c *Collector, samples []int64) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	var snap Snapshot
	for _, s := range samples {
		snap = c.ingest(s, nil)
	}
	return snap
}

func TestBankMatchesStandaloneFilters(t *testing.T) {
	c := New(&stubSource{}, time.Second)
	samples := []int64{480, 530, 1290, 470, 455, 510}

	snap := ingestAll(c, samples)

	if snap.Raw != samples[len(samples)-1] {
		t.Fatalf("Raw = %d, want %d", snap.Raw, samples[len(samples)-1])
	}
	if len(snap.Filters) != len(Smoothings) {
		t.Fatalf("got %d filter points, want %d", len(snap.Filters), len(Smoothings))
	}

	for i, s := range Smoothings {
		ref := shiftema.New(s)
		var want int64
		for _, v := range samples {
			want = ref.Next(v)
		}
		fp := snap.Filters[i]
		if fp.Smoothing != s {
			t.Errorf("filter %d: smoothing %v, want %v", i, fp.Smoothing, s)
		}
		if fp.Value != want {
			t.Errorf("filter %v: value %d, want %d", s, fp.Value, want)
		}
		if fp.Scaled != ref.Scaled() {
			t.Errorf("filter %v: scaled %d, want %d", s, fp.Scaled, ref.Scaled())
		}
		if n := len(fp.History); n != len(samples) {
			t.Errorf("filter %v: history length %d, want %d", s, n, len(samples))
		}
	}
}

func TestResetFiltersReseeds(t *testing.T) {
	c := New(&stubSource{}, time.Second)
	ingestAll(c, []int64{100, 900, 300})

	c.ResetFilters()

	snap := ingestAll(c, []int64{777})
	for _, fp := range snap.Filters {
		if fp.Value != 777 {
			t.Errorf("filter %v seeded to %d after reset, want 777", fp.Smoothing, fp.Value)
		}
		if len(fp.History) != 1 {
			t.Errorf("filter %v history not cleared: %v", fp.Smoothing, fp.History)
		}
	}
	if len(snap.RawHistory) != 1 {
		t.Errorf("raw history not cleared: %v", snap.RawHistory)
	}
}

func TestInjectAndBias(t *testing.T) {
	c := New(&stubSource{v: 100}, time.Second)

	c.Inject(50)
	if snap := c.poll(); snap.Raw != 150 {
		t.Fatalf("after Inject: Raw = %d, want 150", snap.Raw)
	}
	if snap := c.poll(); snap.Raw != 100 {
		t.Fatalf("injection not one-shot: Raw = %d, want 100", snap.Raw)
	}

	c.Bias(20)
	if snap := c.poll(); snap.Raw != 120 {
		t.Fatalf("after Bias: Raw = %d, want 120", snap.Raw)
	}
	if snap := c.poll(); snap.Raw != 120 {
		t.Fatalf("bias not persistent: Raw = %d, want 120", snap.Raw)
	}
}

func TestStartStop(t *testing.T) {
	c := New(&stubSource{v: 42}, time.Millisecond)
	ch := c.Start()

	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("channel closed before Stop")
		}
		if snap.Raw != 42 {
			t.Errorf("Raw = %d, want 42", snap.Raw)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot within 1s")
	}

	c.Stop()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return // closed, as expected
			}
		case <-deadline:
			t.Fatal("channel not closed within 1s of Stop")
		}
	}
}
