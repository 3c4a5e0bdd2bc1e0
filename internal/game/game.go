package game

import (
	"github.com/sirupsen/logrus"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/generator"
	"svw.info/minesweeper/internal/grid"
	"svw.info/minesweeper/internal/ports"
)

// Game drives one board at a time through the click state machine.
// It is not safe for concurrent use; callers serialize access.
type Game struct {
	grid     *grid.BombGrid
	status   domain.Status
	flagMode bool
	bombs    int

	gen ports.Generator
	log logrus.FieldLogger
}

type Option func(*Game)

// WithGenerator sets the board generator used by StartNewGame.
func WithGenerator(gen ports.Generator) Option {
	return func(g *Game) { g.gen = gen }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Game) { g.log = l }
}

// New returns a game with no active board. Its status is EndedLoss until
// StartNewGame succeeds.
func New(opts ...Option) *Game {
	g := &Game{
		grid:   grid.New(0),
		status: domain.EndedLoss,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.gen == nil {
		g.gen = generator.NewUniformFromClock()
	}
	if g.log == nil {
		g.log = logrus.StandardLogger()
	}
	return g
}

func (g *Game) Grid() *grid.BombGrid   { return g.grid }
func (g *Game) Cells() []*grid.Cell    { return g.grid.Cells() }
func (g *Game) Status() domain.Status  { return g.status }
func (g *Game) FlagMode() bool         { return g.flagMode }
func (g *Game) Bombs() int             { return g.bombs }
func (g *Game) HasEnded() bool         { return g.status.Ended() }
func (g *Game) Flags() int             { return g.grid.Count(grid.Flagged) }
func (g *Game) At(x, y int) *grid.Cell { return g.grid.At(x, y) }

// StartNewGame replaces the board with a freshly generated one. On error the
// previous board and status are kept.
func (g *Game) StartNewGame(size, bombs int) error {
	b, err := g.gen.Generate(size, bombs)
	if err != nil {
		return err
	}
	g.grid = b
	g.bombs = bombs
	g.status = domain.InProgress
	g.log.WithFields(logrus.Fields{
		"size":  size,
		"bombs": bombs,
	}).Debug("new game")
	return nil
}

// ToggleFlagMode switches clicks between revealing and flagging.
func (g *Game) ToggleFlagMode() {
	g.flagMode = !g.flagMode
}

// Click is OnCellClick addressed by coordinate; off-board clicks are ignored.
func (g *Game) Click(x, y int) {
	g.OnCellClick(g.grid.At(x, y))
}

// OnCellClick applies one click. Cells that do not belong to the current
// board are ignored.
func (g *Game) OnCellClick(c *grid.Cell) {
	if g.status != domain.InProgress || !g.grid.Owns(c) {
		return
	}

	if g.flagMode {
		c.ToggleFlag()
		return
	}

	c.Reveal()
	if c.Revealed() && c.Bomb() {
		g.endWithLoss(c)
		return
	}

	g.revealTilesAround(c)
	if g.status != domain.InProgress {
		return
	}

	covered := g.grid.Count(grid.Hidden) + g.grid.Count(grid.Flagged)
	if covered == g.bombs {
		g.status = domain.EndedWin
		g.log.WithField("bombs", g.bombs).Debug("game won")
	}
}

// revealTilesAround chain-reveals from start once enough of its neighbours
// are flagged. Blank cells expand, numbered cells bound the fill, and a
// revealed bomb stops everything.
func (g *Game) revealTilesAround(start *grid.Cell) {
	if start.Flagged() || start.Bomb() {
		return
	}

	neighbours := g.grid.AdjacentTo(start.Index())
	marked := 0
	for _, n := range neighbours {
		if n.Flagged() {
			marked++
		}
	}
	if marked < start.Adjacent() {
		return
	}

	frontier := make([]*grid.Cell, len(neighbours), len(neighbours)*2)
	copy(frontier, neighbours)
	for len(frontier) > 0 {
		c := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if !c.Hidden() {
			continue
		}

		c.Reveal()
		if c.Bomb() {
			g.endWithLoss(c)
			return
		}
		if c.Adjacent() > 0 {
			continue
		}
		frontier = append(frontier, g.grid.AdjacentTo(c.Index())...)
	}
}

func (g *Game) endWithLoss(c *grid.Cell) {
	g.status = domain.EndedLoss
	x, y := g.grid.Coord(c.Index())
	g.log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("bomb revealed")
}

// RevealBombs discloses every bomb. It does not change the status.
func (g *Game) RevealBombs() {
	g.grid.DiscloseBombs()
}
