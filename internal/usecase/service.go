package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/game"
	"svw.info/minesweeper/internal/ports"
	"svw.info/minesweeper/internal/viewmodel"
)

var (
	ErrUnknownGame  = errors.New("unknown game")
	ErrTooManyGames = errors.New("too many games in progress")
)

var errNotConfigured = errors.New("usecase dependency not configured")

// Autoplayer finishes a game on the player's behalf.
type Autoplayer interface {
	Play(ctx context.Context, g *game.Game) (domain.Status, ports.Stats, error)
}

type session struct {
	mu      sync.Mutex
	game    *game.Game
	moves   int
	started time.Time
	saved   bool
}

// Service owns the live games. Each game is guarded by its own lock since
// the engine expects a single writer. Finished games stay readable until
// MaxGames is reached; then the oldest finished ones are evicted to make room.
type Service struct {
	Generator  ports.Generator
	Validator  ports.Validator
	Hinter     ports.Hinter
	Storage    ports.Storage
	Autoplayer Autoplayer

	MaxGames int
	Log      logrus.FieldLogger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	finished []uuid.UUID // oldest first
}

func NewService(gen ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage, ap Autoplayer) *Service {
	return &Service{
		Generator:  gen,
		Validator:  v,
		Hinter:     h,
		Storage:    st,
		Autoplayer: ap,
		MaxGames:   1024,
		Log:        logrus.StandardLogger(),
		sessions:   make(map[uuid.UUID]*session),
	}
}

func (u *Service) lookup(id uuid.UUID) (*session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[id]
	if !ok {
		return nil, ErrUnknownGame
	}
	return s, nil
}

// NewGame validates p, starts a game and registers it under a fresh ID.
func (u *Service) NewGame(ctx context.Context, p domain.Params) (uuid.UUID, viewmodel.GameView, error) {
	if u.Generator == nil {
		return uuid.Nil, viewmodel.GameView{}, errNotConfigured
	}
	if u.Validator != nil {
		if err := u.Validator.Validate(ctx, p); err != nil {
			return uuid.Nil, viewmodel.GameView{}, err
		}
	}

	g := game.New(game.WithGenerator(u.Generator), game.WithLogger(u.Log))
	if err := g.StartNewGame(p.Size, p.Bombs); err != nil {
		return uuid.Nil, viewmodel.GameView{}, err
	}

	u.mu.Lock()
	evicted := u.evictFinished()
	if u.MaxGames > 0 && len(u.sessions) >= u.MaxGames {
		u.mu.Unlock()
		return uuid.Nil, viewmodel.GameView{}, ErrTooManyGames
	}
	id := uuid.New()
	u.sessions[id] = &session{game: g, started: time.Now()}
	live := len(u.sessions)
	u.mu.Unlock()

	u.Log.WithFields(logrus.Fields{
		"game":    id.String(),
		"size":    p.Size,
		"bombs":   p.Bombs,
		"live":    live,
		"evicted": evicted,
	}).Info("game started")
	return id, viewmodel.NewGameView(id.String(), g), nil
}

// evictFinished drops finished games, oldest first, until a new one fits.
// The caller holds u.mu.
func (u *Service) evictFinished() int {
	if u.MaxGames <= 0 {
		return 0
	}
	n := 0
	for len(u.sessions) >= u.MaxGames && len(u.finished) > 0 {
		delete(u.sessions, u.finished[0])
		u.finished = u.finished[1:]
		n++
	}
	return n
}

// Click applies one click at (x, y).
func (u *Service) Click(ctx context.Context, id uuid.UUID, x, y int) (viewmodel.GameView, error) {
	s, err := u.lookup(id)
	if err != nil {
		return viewmodel.GameView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.HasEnded() && s.game.At(x, y) != nil {
		s.moves++
	}
	s.game.Click(x, y)
	u.finish(ctx, id, s)
	return viewmodel.NewGameView(id.String(), s.game), nil
}

func (u *Service) ToggleFlagMode(ctx context.Context, id uuid.UUID) (viewmodel.GameView, error) {
	s, err := u.lookup(id)
	if err != nil {
		return viewmodel.GameView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.ToggleFlagMode()
	return viewmodel.NewGameView(id.String(), s.game), nil
}

func (u *Service) State(ctx context.Context, id uuid.UUID) (viewmodel.GameView, error) {
	s, err := u.lookup(id)
	if err != nil {
		return viewmodel.GameView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return viewmodel.NewGameView(id.String(), s.game), nil
}

func (u *Service) Hint(ctx context.Context, id uuid.UUID) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	s, err := u.lookup(id)
	if err != nil {
		return domain.Hint{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.HasEnded() {
		return domain.Hint{}, false, nil
	}
	return u.Hinter.Hint(ctx, s.game.Grid())
}

// Autoplay lets the autoplayer finish the game.
func (u *Service) Autoplay(ctx context.Context, id uuid.UUID) (viewmodel.GameView, ports.Stats, error) {
	if u.Autoplayer == nil {
		return viewmodel.GameView{}, ports.Stats{}, errNotConfigured
	}
	s, err := u.lookup(id)
	if err != nil {
		return viewmodel.GameView{}, ports.Stats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, st, err := u.Autoplayer.Play(ctx, s.game)
	s.moves += st.Moves
	u.finish(ctx, id, s)
	return viewmodel.NewGameView(id.String(), s.game), st, err
}

// Forget drops a game, finished or not.
func (u *Service) Forget(ctx context.Context, id uuid.UUID) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[id]; !ok {
		return ErrUnknownGame
	}
	delete(u.sessions, id)
	for i, f := range u.finished {
		if f == id {
			u.finished = append(u.finished[:i], u.finished[i+1:]...)
			break
		}
	}
	return nil
}

func (u *Service) Results(ctx context.Context) ([]domain.RecordMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}

// finish discloses the bombs and records the outcome once per game, and
// queues the game for eviction. The caller holds s.mu, never u.mu.
func (u *Service) finish(ctx context.Context, id uuid.UUID, s *session) {
	if !s.game.HasEnded() || s.saved {
		return
	}
	s.saved = true
	u.mu.Lock()
	if _, ok := u.sessions[id]; ok {
		u.finished = append(u.finished, id)
	}
	u.mu.Unlock()
	flags := s.game.Flags()
	s.game.RevealBombs()

	rec := &domain.Record{
		ID:         id.String(),
		Size:       s.game.Grid().Size(),
		Bombs:      s.game.Bombs(),
		Status:     s.game.Status(),
		Moves:      s.moves,
		Flags:      flags,
		StartedAt:  s.started.UnixNano(),
		FinishedAt: time.Now().UnixNano(),
	}
	log := u.Log.WithFields(logrus.Fields{
		"game":   rec.ID,
		"status": rec.Status.String(),
		"moves":  rec.Moves,
	})
	log.Info("game finished")
	if u.Storage == nil {
		return
	}
	if err := u.Storage.Save(ctx, rec); err != nil {
		log.WithError(err).Warn("saving result failed")
	}
}
