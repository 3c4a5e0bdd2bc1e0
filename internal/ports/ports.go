package ports

import (
	"context"
	"time"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/grid"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Moves    int
	Duration time.Duration
}

// Generator builds a freshly generated board.
type Generator interface {
	Generate(size, bombs int) (*grid.BombGrid, error)
}

// Validator checks new-game parameters before a board is built.
type Validator interface {
	Validate(ctx context.Context, p domain.Params) error
}

// Hinter returns the next safe deduction visible on the board.
type Hinter interface {
	Hint(ctx context.Context, b *grid.BombGrid) (domain.Hint, bool, error)
}

// Storage persists and retrieves finished game records as JSON.
type Storage interface {
	Save(ctx context.Context, r *domain.Record) error
	Load(ctx context.Context, id string) (*domain.Record, error)
	List(ctx context.Context) ([]domain.RecordMeta, error)
}

// Sounds plays short cues for game events.
type Sounds interface {
	Reveal()
	Flag()
	Explode()
	Win()
}
