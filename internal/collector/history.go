package collector

// HistoryLen is the default number of samples kept for sparkline display.
const HistoryLen = 64

// RingBuffer is a fixed-size circular buffer of int64 samples.
type RingBuffer struct {
	data  []int64
	size  int
	head  int // next write position
	count int // number of valid samples
}

// NewRingBuffer creates a RingBuffer with the default HistoryLen size.
func NewRingBuffer() *RingBuffer {
	return NewRingBufferN(HistoryLen)
}

// NewRingBufferN creates a RingBuffer with a custom size.
func NewRingBufferN(size int) *RingBuffer {
	if size <= 0 {
		size = HistoryLen
	}
	return &RingBuffer{
		data: make([]int64, size),
		size: size,
	}
}

// Push adds a new value to the buffer.
func (r *RingBuffer) Push(v int64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Samples returns all valid samples in chronological order (oldest first).
func (r *RingBuffer) Samples() []int64 {
	if r.count == 0 {
		return nil
	}
	result := make([]int64, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

// Clear discards all samples.
func (r *RingBuffer) Clear() {
	r.head = 0
	r.count = 0
}
