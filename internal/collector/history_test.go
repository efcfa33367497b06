package collector

import "testing"

func TestRingBufferOrder(t *testing.T) {
	r := NewRingBufferN(4)

	if got := r.Samples(); got != nil {
		t.Fatalf("empty buffer returned %v", got)
	}

	r.Push(1)
	r.Push(2)
	r.Push(3)
	want := []int64{1, 2, 3}
	got := r.Samples()
	if len(got) != len(want) {
		t.Fatalf("Samples() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Samples() = %v, want %v", got, want)
		}
	}
}

func TestRingBufferWrap(t *testing.T) {
	r := NewRingBufferN(3)
	for v := int64(1); v <= 5; v++ {
		r.Push(v)
	}

	want := []int64{3, 4, 5}
	got := r.Samples()
	if len(got) != len(want) {
		t.Fatalf("Samples() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Samples() = %v, want %v", got, want)
		}
	}
}

func TestRingBufferClear(t *testing.T) {
	r := NewRingBufferN(3)
	r.Push(1)
	r.Push(2)
	r.Clear()
	if got := r.Samples(); got != nil {
		t.Fatalf("Samples() after Clear = %v", got)
	}
	r.Push(9)
	if got := r.Samples(); len(got) != 1 || got[0] != 9 {
		t.Fatalf("Samples() after reuse = %v", got)
	}
}

func TestRingBufferSizeClamp(t *testing.T) {
	r := NewRingBufferN(0)
	for i := 0; i < HistoryLen+5; i++ {
		r.Push(int64(i))
	}
	if got := len(r.Samples()); got != HistoryLen {
		t.Errorf("len(Samples()) = %d, want default %d", got, HistoryLen)
	}
}
