package source

import "testing"

func TestSyntheticBounds(t *testing.T) {
	s := NewSynthetic(1)
	for i := 0; i < 10000; i++ {
		v, err := s.Sample()
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
		if v < 0 || v > synthMax+synthNoise+synthSpike {
			t.Fatalf("sample %d: %d outside documented range", i, v)
		}
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	a := NewSynthetic(42)
	b := NewSynthetic(42)
	for i := 0; i < 100; i++ {
		va, _ := a.Sample()
		vb, _ := b.Sample()
		if va != vb {
			t.Fatalf("sample %d: same seed diverged (%d != %d)", i, va, vb)
		}
	}
}

func TestSyntheticVaries(t *testing.T) {
	s := NewSynthetic(7)
	first, _ := s.Sample()
	for i := 0; i < 50; i++ {
		if v, _ := s.Sample(); v != first {
			return
		}
	}
	t.Error("signal stayed constant for 50 samples")
}
