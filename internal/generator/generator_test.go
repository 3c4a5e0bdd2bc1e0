package generator

import (
	"errors"
	"testing"

	"svw.info/minesweeper/internal/grid"
)

func TestUniformGenerateSizes(t *testing.T) {
	cases := []struct {
		name        string
		size, bombs int
	}{
		{"tiny", 2, 1},
		{"classic", 10, 20},
		{"dense", 8, 63},
		{"empty", 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewUniform(12345).Generate(tc.size, tc.bombs)
			if err != nil {
				t.Fatalf("Generate(%d,%d) failed: %v", tc.size, tc.bombs, err)
			}
			if g.Size() != tc.size || g.Bombs() != tc.bombs {
				t.Fatalf("got size=%d bombs=%d, want %d/%d", g.Size(), g.Bombs(), tc.size, tc.bombs)
			}
			if g.Count(grid.Hidden) != tc.size*tc.size {
				t.Fatalf("fresh board has non-hidden cells")
			}
		})
	}
}

func TestUniformRejectsFullBoard(t *testing.T) {
	_, err := NewUniform(1).Generate(3, 9)
	if !errors.Is(err, grid.ErrTooManyBombs) {
		t.Fatalf("err = %v, want ErrTooManyBombs", err)
	}
}

func TestUniformSameSeedSameBoard(t *testing.T) {
	a, _ := NewUniform(7).Generate(6, 9)
	b, _ := NewUniform(7).Generate(6, 9)
	if a.String() != b.String() {
		t.Fatalf("boards differ for same seed")
	}
	for i := 0; i < a.Len(); i++ {
		if a.AtIndex(i).Bomb() != b.AtIndex(i).Bomb() {
			t.Fatalf("bomb layout differs at %d", i)
		}
	}
}

func TestFixedGenerate(t *testing.T) {
	g, err := NewFixed(4).Generate(3, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !g.AtIndex(4).Bomb() || g.Bombs() != 1 {
		t.Fatalf("layout not planted:\n%s", g)
	}

	if _, err := NewFixed(4).Generate(3, 2); !errors.Is(err, grid.ErrBadLayout) {
		t.Fatalf("mismatched count err = %v, want ErrBadLayout", err)
	}
	if _, err := NewFixed(4, 4).Generate(3, 2); !errors.Is(err, grid.ErrBadLayout) {
		t.Fatalf("duplicate err = %v, want ErrBadLayout", err)
	}
}
