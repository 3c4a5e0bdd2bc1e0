package generator

import (
	"math/rand"
	"sync"
	"time"

	"svw.info/minesweeper/internal/grid"
)

// Uniform places bombs uniformly at random using a seeded source.
type Uniform struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniform wires a generator around the given seed.
func NewUniform(seed int64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

// NewUniformFromClock seeds the generator from the wall clock.
func NewUniformFromClock() *Uniform {
	return NewUniform(time.Now().UnixNano())
}

// Generate builds a cleared size×size grid and places bombs on it.
func (u *Uniform) Generate(size, bombs int) (*grid.BombGrid, error) {
	g := grid.New(size)
	g.Clear()
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := g.Generate(bombs, u.rng); err != nil {
		return nil, err
	}
	return g, nil
}
