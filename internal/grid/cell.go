package grid

// CellState is the visibility of a single cell.
type CellState int

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "hidden"
	}
}

// Cell is one square of a BombGrid. Bomb and Adjacent are fixed by the grid
// when it is generated; only the state changes during play.
type Cell struct {
	index    int
	state    CellState
	bomb     bool
	adjacent int
}

func (c *Cell) State() CellState { return c.state }
func (c *Cell) Bomb() bool       { return c.bomb }
func (c *Cell) Adjacent() int    { return c.adjacent }

// Index is the row-major position of the cell inside its grid.
func (c *Cell) Index() int { return c.index }

func (c *Cell) Hidden() bool   { return c.state == Hidden }
func (c *Cell) Revealed() bool { return c.state == Revealed }
func (c *Cell) Flagged() bool  { return c.state == Flagged }

// Reveal moves a hidden cell to Revealed. Flagged and revealed cells are left alone.
func (c *Cell) Reveal() {
	if c.state == Hidden {
		c.state = Revealed
	}
}

// ToggleFlag flips between Hidden and Flagged; revealed cells cannot be flagged.
func (c *Cell) ToggleFlag() {
	switch c.state {
	case Hidden:
		c.state = Flagged
	case Flagged:
		c.state = Hidden
	}
}

// disclose reveals the cell regardless of its state. Used at game end.
func (c *Cell) disclose() { c.state = Revealed }

func (c *Cell) reset() {
	c.state = Hidden
	c.bomb = false
	c.adjacent = 0
}

func (c *Cell) pristine() bool {
	return c.state == Hidden && !c.bomb && c.adjacent == 0
}
