package rng

import "testing"

// Known-good state transitions. Losing these exact values silently changes
// every generated network, so they are pinned.
func TestStream_KnownSequence(t *testing.T) {
	tests := []struct {
		seed int64
		want []uint32
	}{
		{seed: 0, want: []uint32{1013904223, 1196435762, 3519870697}},
		{seed: 42, want: []uint32{1083814273, 378494188, 2479403867}},
		{seed: 7, want: []uint32{1025555898, 3923423697, 2630631676}},
	}

	for _, tt := range tests {
		s := New(tt.seed)
		for i, want := range tt.want {
			if got := s.Uint32(); got != want {
				t.Errorf("seed %d draw %d: got %d, want %d", tt.seed, i, got, want)
			}
		}
	}
}

func TestStream_SameSeedSameSequence(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 1000; i++ {
		if av, bv := a.Float64(), b.Float64(); av != bv {
			t.Fatalf("streams diverged at draw %d: %v != %v", i, av, bv)
		}
	}
}

func TestStream_Float64Bounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestStream_Range(t *testing.T) {
	s := New(5)
	for i := 0; i < 1000; i++ {
		v := s.Range(0.3, 0.6)
		if v < 0.3 || v >= 0.6 {
			t.Fatalf("draw %d out of [0.3,0.6): %v", i, v)
		}
	}
}

func TestStream_Intn(t *testing.T) {
	s := New(8)
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		v := s.Intn(10)
		if v < 0 || v >= 10 {
			t.Fatalf("Intn(10) returned %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Errorf("Intn(10) over 5000 draws hit %d distinct values, want 10", len(seen))
	}
	if got := s.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
}

func TestStream_IntRange(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(1, 5)
		if v < 1 || v > 5 {
			t.Fatalf("IntRange(1,5) returned %d", v)
		}
	}
	if got := s.IntRange(4, 4); got != 4 {
		t.Errorf("IntRange(4,4) = %d, want 4", got)
	}
}
