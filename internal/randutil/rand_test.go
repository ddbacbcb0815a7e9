package randutil

import "testing"

func TestNewIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	a, b := New(1234), New(1234)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("Same seed diverged at draw %d", i)
		}
	}
}

func TestNearbySeedsDiverge(t *testing.T) {
	t.Parallel()

	a, b := New(0), New(1)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same > 0 {
		t.Errorf("Adjacent seeds produced %d identical draws", same)
	}
}
