package grid

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
)

var (
	// ErrNotCleared is returned when bombs are placed on a grid that was already generated or played.
	ErrNotCleared = errors.New("grid must be cleared before generating")
	// ErrTooManyBombs is returned when the bomb count cannot fit the board.
	ErrTooManyBombs = errors.New("bomb count must be in [0, size*size)")
	// ErrBadLayout is returned by Plant for duplicate or out-of-range bomb indices.
	ErrBadLayout = errors.New("invalid bomb layout")
)

// BombGrid is a square board of size*size cells stored row-major:
// index = x + y*size.
type BombGrid struct {
	size  int
	cells []*Cell
}

// New builds a size*size grid of hidden, bomb-free cells.
func New(size int) *BombGrid {
	if size < 0 {
		size = 0
	}
	g := &BombGrid{size: size, cells: make([]*Cell, size*size)}
	for i := range g.cells {
		g.cells[i] = &Cell{index: i}
	}
	return g
}

func (g *BombGrid) Size() int { return g.size }
func (g *BombGrid) Len() int  { return len(g.cells) }

// Cells returns the cells in row-major order. The slice is a copy; the cells are not.
func (g *BombGrid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// At returns the cell at (x, y) or nil when the coordinate is off the board.
func (g *BombGrid) At(x, y int) *Cell {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return nil
	}
	return g.cells[x+y*g.size]
}

// AtIndex returns the cell at a row-major index or nil when out of range.
func (g *BombGrid) AtIndex(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return g.cells[i]
}

// Coord converts a row-major index to (x, y).
func (g *BombGrid) Coord(index int) (x, y int) {
	if g.size == 0 {
		return 0, 0
	}
	return index % g.size, index / g.size
}

// Owns reports whether c is one of this grid's cells.
func (g *BombGrid) Owns(c *Cell) bool {
	return c != nil && g.AtIndex(c.index) == c
}

// Clear resets every cell to hidden, bomb-free, adjacent=0.
func (g *BombGrid) Clear() {
	for _, c := range g.cells {
		c.reset()
	}
}

func (g *BombGrid) cleared() bool {
	for _, c := range g.cells {
		if !c.pristine() {
			return false
		}
	}
	return true
}

// Generate places bombs uniformly at random and computes adjacency counts.
// The grid must be freshly cleared.
func (g *BombGrid) Generate(bombs int, rng *rand.Rand) error {
	if bombs < 0 || bombs >= len(g.cells) {
		return ErrTooManyBombs
	}
	if !g.cleared() {
		return ErrNotCleared
	}
	placed := 0
	for placed < bombs {
		c := g.cells[rng.Intn(len(g.cells))]
		if !c.bomb {
			c.bomb = true
			placed++
		}
	}
	g.count()
	return nil
}

// Plant places bombs at the given indices and computes adjacency counts.
// The grid must be freshly cleared.
func (g *BombGrid) Plant(indices ...int) error {
	if len(indices) >= len(g.cells) {
		return ErrTooManyBombs
	}
	if !g.cleared() {
		return ErrNotCleared
	}
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(g.cells) || seen[i] {
			return ErrBadLayout
		}
		seen[i] = true
	}
	for i := range seen {
		g.cells[i].bomb = true
	}
	g.count()
	return nil
}

func (g *BombGrid) count() {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			n := 0
			for _, adj := range g.Adjacent(x, y) {
				if adj.bomb {
					n++
				}
			}
			g.cells[x+y*g.size].adjacent = n
		}
	}
}

// Adjacent returns the up to eight on-board neighbours of (x, y) in a fixed order.
func (g *BombGrid) Adjacent(x, y int) []*Cell {
	candidates := [8]*Cell{
		g.At(x, y+1),
		g.At(x, y-1),
		g.At(x+1, y),
		g.At(x+1, y+1),
		g.At(x+1, y-1),
		g.At(x-1, y),
		g.At(x-1, y+1),
		g.At(x-1, y-1),
	}
	out := make([]*Cell, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// AdjacentTo is Adjacent addressed by row-major index.
func (g *BombGrid) AdjacentTo(index int) []*Cell {
	if index < 0 || index >= len(g.cells) {
		return nil
	}
	x, y := g.Coord(index)
	return g.Adjacent(x, y)
}

// Count returns the number of cells in the given state.
func (g *BombGrid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c.state == s {
			n++
		}
	}
	return n
}

// Bombs returns the number of bomb cells.
func (g *BombGrid) Bombs() int {
	n := 0
	for _, c := range g.cells {
		if c.bomb {
			n++
		}
	}
	return n
}

// DiscloseBombs reveals every bomb, flagged or not. Adjacency counts are untouched.
func (g *BombGrid) DiscloseBombs() {
	for _, c := range g.cells {
		if c.bomb {
			c.disclose()
		}
	}
}

// String renders the grid for debugging: '-' hidden, 'F' flagged,
// '*' revealed bomb, '.' revealed blank, digits for counts.
func (g *BombGrid) String() string {
	var sb strings.Builder
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			c := g.cells[x+y*g.size]
			switch {
			case c.state == Flagged:
				sb.WriteByte('F')
			case c.state == Hidden:
				sb.WriteByte('-')
			case c.bomb:
				sb.WriteByte('*')
			case c.adjacent == 0:
				sb.WriteByte('.')
			default:
				sb.WriteString(strconv.Itoa(c.adjacent))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
