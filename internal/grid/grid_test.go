package grid

import (
	"errors"
	"math/rand"
	"testing"
)

func TestCellRevealIsIdempotent(t *testing.T) {
	c := &Cell{}
	c.Reveal()
	c.Reveal()
	if c.State() != Revealed {
		t.Fatalf("state after double reveal = %v, want revealed", c.State())
	}

	f := &Cell{}
	f.ToggleFlag()
	f.Reveal()
	if f.State() != Flagged {
		t.Fatalf("reveal changed a flagged cell to %v", f.State())
	}
}

func TestCellToggleFlag(t *testing.T) {
	c := &Cell{}
	c.ToggleFlag()
	if !c.Flagged() {
		t.Fatalf("hidden cell did not become flagged")
	}
	c.ToggleFlag()
	if !c.Hidden() {
		t.Fatalf("flagged cell did not return to hidden, got %v", c.State())
	}
	c.Reveal()
	c.ToggleFlag()
	if !c.Revealed() {
		t.Fatalf("toggling a revealed cell changed it to %v", c.State())
	}
}

func TestNewGridIsPristine(t *testing.T) {
	g := New(4)
	if g.Len() != 16 {
		t.Fatalf("len = %d, want 16", g.Len())
	}
	for i, c := range g.Cells() {
		if c.Index() != i || !c.Hidden() || c.Bomb() || c.Adjacent() != 0 {
			t.Fatalf("cell %d not pristine: idx=%d state=%v bomb=%v adj=%d", i, c.Index(), c.State(), c.Bomb(), c.Adjacent())
		}
	}
}

func TestAtBounds(t *testing.T) {
	g := New(3)
	cases := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true}, {2, 2, true}, {1, 2, true},
		{-1, 0, false}, {0, -1, false}, {3, 0, false}, {0, 3, false},
	}
	for _, tc := range cases {
		c := g.At(tc.x, tc.y)
		if (c != nil) != tc.ok {
			t.Fatalf("At(%d,%d) present=%v, want %v", tc.x, tc.y, c != nil, tc.ok)
		}
		if c != nil && c.Index() != tc.x+tc.y*3 {
			t.Fatalf("At(%d,%d) index=%d, want %d", tc.x, tc.y, c.Index(), tc.x+tc.y*3)
		}
	}
}

func TestAdjacentCounts(t *testing.T) {
	g := New(3)
	cases := []struct {
		name string
		x, y int
		want int
	}{
		{"corner", 0, 0, 3},
		{"edge", 1, 0, 5},
		{"center", 1, 1, 8},
		{"far corner", 2, 2, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if n := len(g.Adjacent(tc.x, tc.y)); n != tc.want {
				t.Fatalf("Adjacent(%d,%d) = %d cells, want %d", tc.x, tc.y, n, tc.want)
			}
			if n := len(g.AdjacentTo(tc.x + tc.y*3)); n != tc.want {
				t.Fatalf("AdjacentTo(%d) = %d cells, want %d", tc.x+tc.y*3, n, tc.want)
			}
		})
	}
	if g.AdjacentTo(9) != nil {
		t.Fatalf("AdjacentTo out of range should be nil")
	}
}

func TestAdjacentOrderIsDeterministic(t *testing.T) {
	g := New(3)
	got := g.AdjacentTo(4)
	want := []int{7, 1, 5, 8, 2, 3, 6, 0}
	for i, c := range got {
		if c.Index() != want[i] {
			t.Fatalf("neighbour %d = %d, want %d", i, c.Index(), want[i])
		}
	}
}

func TestGeneratePlacesExactBombsAndCounts(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 12345} {
		rng := rand.New(rand.NewSource(seed))
		g := New(9)
		if err := g.Generate(20, rng); err != nil {
			t.Fatalf("seed %d: Generate: %v", seed, err)
		}
		if n := g.Bombs(); n != 20 {
			t.Fatalf("seed %d: bombs = %d, want 20", seed, n)
		}
		for i, c := range g.Cells() {
			want := 0
			for _, adj := range g.AdjacentTo(i) {
				if adj.Bomb() {
					want++
				}
			}
			if c.Adjacent() != want || c.Adjacent() < 0 || c.Adjacent() > 8 {
				t.Fatalf("seed %d: cell %d adjacent=%d, want %d", seed, i, c.Adjacent(), want)
			}
		}
	}
}

func TestGenerateIsReproducibleForSeed(t *testing.T) {
	a, b := New(8), New(8)
	_ = a.Generate(10, rand.New(rand.NewSource(99)))
	_ = b.Generate(10, rand.New(rand.NewSource(99)))
	for i := range a.Cells() {
		if a.AtIndex(i).Bomb() != b.AtIndex(i).Bomb() {
			t.Fatalf("layouts differ at %d for the same seed", i)
		}
	}
}

func TestGenerateRejectsMisuse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if err := New(3).Generate(9, rng); !errors.Is(err, ErrTooManyBombs) {
		t.Fatalf("Generate(size²) err = %v, want ErrTooManyBombs", err)
	}
	if err := New(3).Generate(-1, rng); !errors.Is(err, ErrTooManyBombs) {
		t.Fatalf("Generate(-1) err = %v, want ErrTooManyBombs", err)
	}
	// An empty board has no safe cell, even with no bombs.
	if err := New(0).Generate(0, rng); !errors.Is(err, ErrTooManyBombs) {
		t.Fatalf("Generate(0) on 0x0 err = %v, want ErrTooManyBombs", err)
	}
	if err := New(0).Plant(); !errors.Is(err, ErrTooManyBombs) {
		t.Fatalf("Plant() on 0x0 err = %v, want ErrTooManyBombs", err)
	}

	g := New(3)
	if err := g.Generate(2, rng); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := g.Generate(2, rng); !errors.Is(err, ErrNotCleared) {
		t.Fatalf("second Generate err = %v, want ErrNotCleared", err)
	}
	g.Clear()
	if err := g.Generate(2, rng); err != nil {
		t.Fatalf("Generate after Clear: %v", err)
	}
}

func TestPlantCenterBomb(t *testing.T) {
	g := New(3)
	if err := g.Plant(4); err != nil {
		t.Fatalf("Plant: %v", err)
	}
	for _, i := range []int{0, 2, 6, 8} {
		if a := g.AtIndex(i).Adjacent(); a != 1 {
			t.Fatalf("corner %d adjacent = %d, want 1", i, a)
		}
	}
	for _, i := range []int{1, 3, 5, 7} {
		if a := g.AtIndex(i).Adjacent(); a != 1 {
			t.Fatalf("edge %d adjacent = %d, want 1", i, a)
		}
	}
}

func TestPlantRejectsBadLayouts(t *testing.T) {
	cases := []struct {
		name    string
		indices []int
		want    error
	}{
		{"duplicate", []int{1, 1}, ErrBadLayout},
		{"negative", []int{-1}, ErrBadLayout},
		{"out of range", []int{9}, ErrBadLayout},
		{"full board", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, ErrTooManyBombs},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := New(3).Plant(tc.indices...); !errors.Is(err, tc.want) {
				t.Fatalf("Plant(%v) err = %v, want %v", tc.indices, err, tc.want)
			}
		})
	}
}

func TestClearResetsCells(t *testing.T) {
	g := New(4)
	_ = g.Plant(0, 5)
	g.AtIndex(3).Reveal()
	g.AtIndex(7).ToggleFlag()
	g.Clear()
	for i, c := range g.Cells() {
		if !c.Hidden() || c.Bomb() || c.Adjacent() != 0 {
			t.Fatalf("cell %d not reset", i)
		}
	}
}

func TestDiscloseBombsLeavesOthers(t *testing.T) {
	g := New(3)
	_ = g.Plant(0, 8)
	g.AtIndex(8).ToggleFlag()
	g.DiscloseBombs()
	if !g.AtIndex(0).Revealed() || !g.AtIndex(8).Revealed() {
		t.Fatalf("bombs not revealed:\n%s", g)
	}
	if g.Count(Revealed) != 2 {
		t.Fatalf("revealed = %d, want 2", g.Count(Revealed))
	}
}

func TestOwns(t *testing.T) {
	a, b := New(2), New(2)
	if !a.Owns(a.AtIndex(3)) {
		t.Fatalf("grid does not own its own cell")
	}
	if a.Owns(b.AtIndex(3)) || a.Owns(nil) {
		t.Fatalf("grid claims a foreign cell")
	}
}

func TestString(t *testing.T) {
	g := New(2)
	_ = g.Plant(0)
	g.AtIndex(0).Reveal()
	g.AtIndex(1).Reveal()
	g.AtIndex(2).ToggleFlag()
	if got, want := g.String(), "*1\nF-\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
