// Package collector polls a sample source on an interval, feeds every
// sample through a bank of EMA filters (one per smoothing selector)
// and publishes display-ready snapshots.
package collector

import (
	"log"
	"sync"
	"time"

	"github.com/googlesky/shiftema"
	"github.com/googlesky/shiftema/internal/source"
)

// Smoothings is the filter bank, one entry per smoothing selector,
// from pass-through to the heaviest divisor.
var Smoothings = []shiftema.Smoothing{
	shiftema.Smoothing1,
	shiftema.Smoothing2,
	shiftema.Smoothing4,
	shiftema.Smoothing8,
	shiftema.Smoothing16,
	shiftema.Smoothing32,
	shiftema.Smoothing64,
	shiftema.Smoothing128,
	shiftema.Smoothing256,
	shiftema.Smoothing512,
}

// FilterPoint is one filter's state at snapshot time.
type FilterPoint struct {
	Smoothing shiftema.Smoothing
	Value     int64   // rounded estimate
	Scaled    int64   // raw scaled accumulator
	History   []int64 // rounded estimates, oldest first
}

// Snapshot is an immutable view of the raw signal and the filter bank,
// delivered to the UI once per poll.
type Snapshot struct {
	SourceName string
	Raw        int64
	RawHistory []int64
	Filters    []FilterPoint
	SourceErr  string // last source error, "" when healthy
	At         time.Time
}

// Collector owns the sample source and the filter bank. All filter
// mutation happens on the collector's goroutine or under its mutex, so
// the unsynchronized EMA instances are never touched concurrently.
type Collector struct {
	src source.Source

	mu        sync.Mutex
	interval  time.Duration
	filters   []*shiftema.EMA
	histories []*RingBuffer
	rawHist   *RingBuffer
	pending   int64 // one-shot disturbance added to the next sample
	bias      int64 // persistent disturbance added to every sample
	lastRaw   int64 // kept across transient source errors

	stopOnce sync.Once
	stopCh   chan struct{}
	snapCh   chan Snapshot
}

// New creates a collector over src. Nothing runs until Start.
func New(src source.Source, interval time.Duration) *Collector {
	c := &Collector{
		src:      src,
		interval: interval,
		rawHist:  NewRingBuffer(),
		stopCh:   make(chan struct{}),
		snapCh:   make(chan Snapshot, 1),
	}
	for _, s := range Smoothings {
		c.filters = append(c.filters, shiftema.New(s))
		c.histories = append(c.histories, NewRingBuffer())
	}
	return c
}

// Start launches the polling loop and returns the snapshot channel.
// The channel is closed when Stop is called.
func (c *Collector) Start() <-chan Snapshot {
	go c.run()
	return c.snapCh
}

// Stop terminates the polling loop and closes the source.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

// SetInterval changes the polling interval for subsequent ticks.
func (c *Collector) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()
}

// Inject adds delta to the next sample only (a spike).
func (c *Collector) Inject(delta int64) {
	c.mu.Lock()
	c.pending += delta
	c.mu.Unlock()
}

// Bias adds delta to every following sample (a step change).
func (c *Collector) Bias(delta int64) {
	c.mu.Lock()
	c.bias += delta
	c.mu.Unlock()
}

// ResetFilters returns every filter to its unprimed state and clears
// all histories and disturbances. The next sample seeds the bank.
func (c *Collector) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.filters {
		f.Reset()
		c.histories[i].Clear()
	}
	c.rawHist.Clear()
	c.pending = 0
	c.bias = 0
}

func (c *Collector) run() {
	defer close(c.snapCh)
	defer c.src.Close()

	for {
		c.mu.Lock()
		interval := c.interval
		c.mu.Unlock()

		select {
		case <-c.stopCh:
			return
		case <-time.After(interval):
		}

		snap := c.poll()
		select {
		case c.snapCh <- snap:
		case <-c.stopCh:
			return
		}
	}
}

// poll draws one sample, runs it through the bank and builds a
// snapshot. On a source error the previous sample is reused so the
// filters keep a continuous input stream.
func (c *Collector) poll() Snapshot {
	raw, err := c.src.Sample()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.Printf("emascope: sample failed, reusing last value: %v", err)
		raw = c.lastRaw
	} else {
		c.lastRaw = raw
	}

	raw += c.bias + c.pending
	c.pending = 0

	return c.ingest(raw, err)
}

// ingest feeds one sample to the bank and assembles the snapshot.
// Callers must hold c.mu.
func (c *Collector) ingest(raw int64, srcErr error) Snapshot {
	c.rawHist.Push(raw)

	snap := Snapshot{
		SourceName: c.src.Name(),
		Raw:        raw,
		RawHistory: c.rawHist.Samples(),
		Filters:    make([]FilterPoint, len(c.filters)),
		At:         time.Now(),
	}
	if srcErr != nil {
		snap.SourceErr = srcErr.Error()
	}

	for i, f := range c.filters {
		v := f.Next(raw)
		c.histories[i].Push(v)
		snap.Filters[i] = FilterPoint{
			Smoothing: f.Smoothing(),
			Value:     v,
			Scaled:    f.Scaled(),
			History:   c.histories[i].Samples(),
		}
	}
	return snap
}
