// Package tui is a terminal front end for a single game.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/game"
	"svw.info/minesweeper/internal/grid"
	"svw.info/minesweeper/internal/ports"
	"svw.info/minesweeper/internal/sound"
)

// Each cell takes two columns so the board looks square.
const cellWidth = 2

var (
	styleHidden    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBomb      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBlank     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMessage   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	hintBackground = tcell.ColorDarkGreen
)

var countColors = [9]tcell.Color{
	tcell.ColorDefault, tcell.ColorBlue, tcell.ColorGreen, tcell.ColorRed, tcell.ColorNavy,
	tcell.ColorMaroon, tcell.ColorTeal, tcell.ColorPurple, tcell.ColorSilver,
}

type App struct {
	screen tcell.Screen
	game   *game.Game
	params domain.Params

	Sounds ports.Sounds
	Hinter ports.Hinter
	Log    logrus.FieldLogger

	cx, cy  int
	message string
	marked  map[domain.CellCoord]bool
	buttons tcell.ButtonMask
}

// New binds g to screen. Sounds and Hinter may be replaced before Run.
func New(screen tcell.Screen, g *game.Game, p domain.Params) *App {
	return &App{
		screen: screen,
		game:   g,
		params: p,
		Sounds: sound.Mute{},
		Log:    logrus.StandardLogger(),
	}
}

// NewGame starts a board with the App's parameters and recentres the cursor.
func (a *App) NewGame() error {
	if err := a.game.StartNewGame(a.params.Size, a.params.Bombs); err != nil {
		return err
	}
	a.cx, a.cy = a.params.Size/2, a.params.Size/2
	a.message = ""
	a.marked = nil
	a.Log.WithFields(logrus.Fields{"size": a.params.Size, "bombs": a.params.Bombs}).Debug("tui: new game")
	return nil
}

// Cursor returns the board coordinate under the cursor.
func (a *App) Cursor() (x, y int) { return a.cx, a.cy }

// Run draws and processes events until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ctx, ev) {
				return nil
			}
			a.Draw()
		}
	}
}

// HandleEvent applies one input event. It returns false when the player quits.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ctx, ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.move(0, -1)
	case tcell.KeyDown:
		a.move(0, 1)
	case tcell.KeyLeft:
		a.move(-1, 0)
	case tcell.KeyRight:
		a.move(1, 0)
	case tcell.KeyEnter:
		a.click(a.cx, a.cy, false)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			a.move(0, -1)
		case 'j':
			a.move(0, 1)
		case 'h':
			a.move(-1, 0)
		case 'l':
			a.move(1, 0)
		case ' ':
			a.click(a.cx, a.cy, false)
		case 'm':
			a.click(a.cx, a.cy, true)
		case 'f':
			a.game.ToggleFlagMode()
		case 'n':
			if err := a.NewGame(); err != nil {
				a.message = err.Error()
			}
		case '?':
			a.hint(ctx)
		}
	}
	return true
}

// Mouse events repeat while a button is held; only the press acts.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	btn := ev.Buttons()
	pressed := btn &^ a.buttons
	a.buttons = btn
	if pressed&(tcell.Button1|tcell.Button2) == 0 {
		return
	}
	mx, my := ev.Position()
	x, y := mx/cellWidth, my
	if a.game.At(x, y) == nil {
		return
	}
	a.cx, a.cy = x, y
	a.click(x, y, pressed&tcell.Button2 != 0)
}

func (a *App) move(dx, dy int) {
	size := a.game.Grid().Size()
	a.cx = min(max(a.cx+dx, 0), size-1)
	a.cy = min(max(a.cy+dy, 0), size-1)
}

// click forwards to the engine. flag forces flag mode for this click only.
func (a *App) click(x, y int, flag bool) {
	if a.game.HasEnded() {
		return
	}
	b := a.game.Grid()
	revealed, flags := b.Count(grid.Revealed), a.game.Flags()

	if flag && !a.game.FlagMode() {
		a.game.ToggleFlagMode()
		a.game.Click(x, y)
		a.game.ToggleFlagMode()
	} else {
		a.game.Click(x, y)
	}
	a.marked = nil

	switch {
	case a.game.Status() == domain.EndedLoss:
		a.game.RevealBombs()
		a.message = "Boom. Press n for a new game."
		a.Sounds.Explode()
	case a.game.Status() == domain.EndedWin:
		a.game.RevealBombs()
		a.message = "Cleared. Press n for a new game."
		a.Sounds.Win()
	case a.game.Flags() != flags:
		a.Sounds.Flag()
	case b.Count(grid.Revealed) != revealed:
		a.Sounds.Reveal()
	}
}

func (a *App) hint(ctx context.Context) {
	if a.Hinter == nil || a.game.HasEnded() {
		return
	}
	h, ok, err := a.Hinter.Hint(ctx, a.game.Grid())
	switch {
	case err != nil:
		a.Log.WithError(err).Warn("tui: hint failed")
		a.message = err.Error()
	case !ok:
		a.message = "No safe deduction; you will have to guess."
		a.marked = nil
	default:
		a.message = h.Message
		a.marked = make(map[domain.CellCoord]bool, len(h.Cells))
		for _, c := range h.Cells {
			a.marked[c] = true
		}
	}
}

// Draw renders the board, a status line and the last message.
func (a *App) Draw() {
	a.screen.Clear()
	b := a.game.Grid()
	size := b.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, st := glyph(b.At(x, y))
			if a.marked[domain.CellCoord{X: x, Y: y}] {
				st = st.Background(hintBackground)
			}
			if x == a.cx && y == a.cy {
				st = st.Reverse(true)
			}
			a.screen.SetContent(x*cellWidth, y, r, nil, st)
		}
	}
	a.text(0, size+1, a.StatusLine(), styleStatus)
	a.text(0, size+2, a.message, styleMessage)
	a.screen.Show()
}

// StatusLine reports the game status, the click mode and bombs minus flags.
func (a *App) StatusLine() string {
	mode := "reveal"
	if a.game.FlagMode() {
		mode = "flag"
	}
	status := strings.ReplaceAll(a.game.Status().String(), "_", " ")
	return fmt.Sprintf("%s | mode: %s | bombs left: %d", status, mode, a.game.Bombs()-a.game.Flags())
}

func (a *App) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func glyph(c *grid.Cell) (rune, tcell.Style) {
	switch {
	case c.Flagged():
		return 'F', styleFlag
	case c.Hidden():
		return '-', styleHidden
	case c.Bomb():
		return '*', styleBomb
	case c.Adjacent() == 0:
		return '.', styleBlank
	default:
		return rune('0' + c.Adjacent()), tcell.StyleDefault.Foreground(countColors[c.Adjacent()]).Bold(true)
	}
}
