package viewmodel

import (
	"svw.info/minesweeper/internal/game"
	"svw.info/minesweeper/internal/grid"
)

type CellView struct {
	State string `json:"state"`
	Count int    `json:"count,omitempty"`
	Bomb  bool   `json:"bomb,omitempty"`
}

type GameView struct {
	ID             string     `json:"id,omitempty"`
	Size           int        `json:"size"`
	Status         string     `json:"status"`
	FlagMode       bool       `json:"flagMode"`
	Bombs          int        `json:"bombs"`
	Flags          int        `json:"flags"`
	BombsRemaining int        `json:"bombsRemaining"`
	Cells          []CellView `json:"cells"`
}

// NewGameView projects the game for a client. Counts and bombs are only
// exposed for revealed cells.
func NewGameView(id string, g *game.Game) GameView {
	b := g.Grid()
	v := GameView{
		ID:       id,
		Size:     b.Size(),
		Status:   g.Status().String(),
		FlagMode: g.FlagMode(),
		Bombs:    g.Bombs(),
		Flags:    g.Flags(),
		Cells:    make([]CellView, b.Len()),
	}
	v.BombsRemaining = v.Bombs - v.Flags
	for i, c := range b.Cells() {
		cv := CellView{State: c.State().String()}
		if c.State() == grid.Revealed {
			cv.Bomb = c.Bomb()
			if !c.Bomb() {
				cv.Count = c.Adjacent()
			}
		}
		v.Cells[i] = cv
	}
	return v
}

// At returns the view of (x, y); the zero CellView when off the board.
func (v GameView) At(x, y int) CellView {
	if x < 0 || y < 0 || x >= v.Size || y >= v.Size {
		return CellView{}
	}
	return v.Cells[x+y*v.Size]
}
