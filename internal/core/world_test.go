package core

import (
	"math/rand"
	"testing"
)

func TestGenerateWorld(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := GenerateWorld(rng, 50, 10, DefaultStations())

	if w.Width != 50 || w.Height != 50 {
		t.Fatalf("world size %dx%d, want 50x50", w.Width, w.Height)
	}
	if len(w.Obstacles) != 10 {
		t.Fatalf("obstacle count = %d, want 10", len(w.Obstacles))
	}

	for _, o := range w.Obstacles {
		if !w.InBounds(o.Pos) {
			t.Errorf("obstacle out of bounds: %v", o.Pos)
		}
		if w.IsStation(o.Pos) {
			t.Errorf("obstacle overlaps station at %v", o.Pos)
		}
		if !w.Blocked.Has(o.Pos) {
			t.Errorf("obstacle %v missing from blocked set", o.Pos)
		}
	}
}

func TestGenerateWorldDeterministic(t *testing.T) {
	a := GenerateWorld(rand.New(rand.NewSource(42)), 50, 10, DefaultStations())
	b := GenerateWorld(rand.New(rand.NewSource(42)), 50, 10, DefaultStations())

	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Fatalf("obstacle %d differs across identical seeds: %v vs %v",
				i, a.Obstacles[i], b.Obstacles[i])
		}
	}
}

func TestNearestStation(t *testing.T) {
	w := &World{Width: 50, Height: 50, Stations: DefaultStations()}

	tests := []struct {
		from Cell
		want Cell
	}{
		{Cell{0, 0}, Cell{5, 5}},
		{Cell{49, 0}, Cell{45, 5}},
		{Cell{25, 49}, Cell{25, 45}},
	}

	for _, tt := range tests {
		got := w.NearestStation(tt.from)
		if got != tt.want {
			t.Errorf("NearestStation(%v) = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestRandomFreeCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := GenerateWorld(rng, 10, 20, []Cell{{0, 0}})

	for i := 0; i < 100; i++ {
		c := w.RandomFreeCell(rng)
		if w.Blocked.Has(c) || w.IsStation(c) {
			t.Fatalf("RandomFreeCell returned occupied cell %v", c)
		}
	}
}
