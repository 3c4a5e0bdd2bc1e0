package hint

import (
	"context"
	"fmt"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/grid"
)

// Singles suggests moves that follow from a single numbered cell, trusting
// the flags already on the board.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first deduction found scanning the board row-major.
// Only visible information is used: states and revealed counts.
func (h *Singles) Hint(ctx context.Context, b *grid.BombGrid) (domain.Hint, bool, error) {
	for _, c := range b.Cells() {
		if err := ctx.Err(); err != nil {
			return domain.Hint{}, false, err
		}
		if !c.Revealed() || c.Bomb() {
			continue
		}
		hidden, flagged := split(b.AdjacentTo(c.Index()))
		if len(hidden) == 0 {
			continue
		}
		x, y := b.Coord(c.Index())
		switch {
		case flagged == c.Adjacent():
			return domain.Hint{
				Message: fmt.Sprintf("Safe: (%d,%d) already has all %d bombs flagged", x, y, c.Adjacent()),
				Cells:   coords(b, hidden),
				Action:  domain.ActionReveal,
			}, true, nil
		case flagged+len(hidden) == c.Adjacent():
			return domain.Hint{
				Message: fmt.Sprintf("Bombs: (%d,%d) needs every covered neighbour", x, y),
				Cells:   coords(b, hidden),
				Action:  domain.ActionFlag,
			}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}

func split(cells []*grid.Cell) (hidden []*grid.Cell, flagged int) {
	for _, c := range cells {
		switch c.State() {
		case grid.Hidden:
			hidden = append(hidden, c)
		case grid.Flagged:
			flagged++
		}
	}
	return hidden, flagged
}

func coords(b *grid.BombGrid, cells []*grid.Cell) []domain.CellCoord {
	out := make([]domain.CellCoord, 0, len(cells))
	for _, c := range cells {
		x, y := b.Coord(c.Index())
		out = append(out, domain.CellCoord{X: x, Y: y})
	}
	return out
}
