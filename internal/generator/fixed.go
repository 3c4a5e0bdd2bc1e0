package generator

import (
	"fmt"

	"svw.info/minesweeper/internal/grid"
)

// Fixed always plants the same bomb indices. Useful for replays and tests.
type Fixed struct {
	Indices []int
}

func NewFixed(indices ...int) *Fixed { return &Fixed{Indices: indices} }

// Generate plants the layout on a size×size grid. bombs must match the layout.
func (f *Fixed) Generate(size, bombs int) (*grid.BombGrid, error) {
	if bombs != len(f.Indices) {
		return nil, fmt.Errorf("%w: layout has %d bombs, %d requested", grid.ErrBadLayout, len(f.Indices), bombs)
	}
	g := grid.New(size)
	g.Clear()
	if err := g.Plant(f.Indices...); err != nil {
		return nil, err
	}
	return g, nil
}
