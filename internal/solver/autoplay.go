package solver

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/game"
	"svw.info/minesweeper/internal/grid"
	"svw.info/minesweeper/internal/ports"
)

// ErrStuck is returned when a game is still running but no covered cell is left to try.
var ErrStuck = errors.New("no hidden cell left to play")

// Autoplayer plays a game through its click API: hinted moves first, a
// random hidden cell when nothing can be deduced.
type Autoplayer struct {
	Hinter ports.Hinter
	rng    *rand.Rand
}

func NewAutoplayer(h ports.Hinter, seed int64) *Autoplayer {
	return &Autoplayer{Hinter: h, rng: rand.New(rand.NewSource(seed))}
}

// Play runs until the game ends, the context is done or no move is left.
// Every move either reveals or flags at least one hidden cell, so Play
// terminates within size² moves.
func (a *Autoplayer) Play(ctx context.Context, g *game.Game) (domain.Status, ports.Stats, error) {
	start := time.Now()
	moves := 0
	stats := func() ports.Stats { return ports.Stats{Moves: moves, Duration: time.Since(start)} }

	for !g.HasEnded() {
		if err := ctx.Err(); err != nil {
			return g.Status(), stats(), err
		}
		h, ok, err := a.Hinter.Hint(ctx, g.Grid())
		if err != nil {
			return g.Status(), stats(), err
		}
		if !ok {
			c := a.guess(g.Grid())
			if c == nil {
				return g.Status(), stats(), ErrStuck
			}
			x, y := g.Grid().Coord(c.Index())
			h = domain.Hint{Action: domain.ActionReveal, Cells: []domain.CellCoord{{X: x, Y: y}}}
		}
		moves += apply(g, h)
	}
	return g.Status(), stats(), nil
}

func apply(g *game.Game, h domain.Hint) int {
	wantFlag := h.Action == domain.ActionFlag
	restore := g.FlagMode()
	if g.FlagMode() != wantFlag {
		g.ToggleFlagMode()
	}
	defer func() {
		if g.FlagMode() != restore {
			g.ToggleFlagMode()
		}
	}()

	n := 0
	for _, p := range h.Cells {
		c := g.At(p.X, p.Y)
		if c == nil || !c.Hidden() || g.HasEnded() {
			continue
		}
		g.OnCellClick(c)
		n++
	}
	return n
}

func (a *Autoplayer) guess(b *grid.BombGrid) *grid.Cell {
	var hidden []*grid.Cell
	for _, c := range b.Cells() {
		if c.Hidden() {
			hidden = append(hidden, c)
		}
	}
	if len(hidden) == 0 {
		return nil
	}
	return hidden[a.rng.Intn(len(hidden))]
}
