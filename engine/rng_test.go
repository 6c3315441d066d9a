package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 20; i++ {
		if a.Roll(100) != b.Roll(100) {
			t.Fatalf("same seed diverged at call %d", i)
		}
	}
}

func TestRNG_ChanceRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 200; i++ {
		if c := r.Chance(); c < 0 || c >= 100 {
			t.Fatalf("draw out of range: %d", c)
		}
	}
}

func TestRNG_RollRange(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 200; i++ {
		if v := r.Roll(6); v < 1 || v > 6 {
			t.Fatalf("roll out of range [1,6]: %d", v)
		}
	}
}

func TestRNG_RollOneSided(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 10; i++ {
		if v := r.Roll(1); v != 1 {
			t.Fatalf("1-sided die should always be 1, got %d", v)
		}
	}
}

func TestRNG_DifferentSeedsDiffer(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	differs := false
	for i := 0; i < 20; i++ {
		if a.Roll(100) != b.Roll(100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different rolls")
	}
}
