package validator

import (
	"context"
	"fmt"
	"strings"

	"svw.info/minesweeper/internal/domain"
)

const (
	MinSize        = 2
	DefaultMaxSize = 64
)

// ParamError lists every problem found with a set of game parameters.
type ParamError struct {
	Params   domain.Params
	Problems []string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid game %dx%d/%d: %s", e.Params.Size, e.Params.Size, e.Params.Bombs, strings.Join(e.Problems, "; "))
}

type ParamValidator struct {
	MaxSize int
}

func New(maxSize int) *ParamValidator {
	if maxSize < MinSize {
		maxSize = DefaultMaxSize
	}
	return &ParamValidator{MaxSize: maxSize}
}

// Validate rejects boards outside [MinSize, MaxSize] and bomb counts that
// would leave no safe cell.
func (v *ParamValidator) Validate(ctx context.Context, p domain.Params) error {
	var problems []string
	if p.Size < MinSize {
		problems = append(problems, fmt.Sprintf("size must be at least %d", MinSize))
	}
	if p.Size > v.MaxSize {
		problems = append(problems, fmt.Sprintf("size must be at most %d", v.MaxSize))
	}
	if p.Bombs < 0 {
		problems = append(problems, "bombs must not be negative")
	}
	if p.Size > 0 && p.Bombs >= p.Size*p.Size {
		problems = append(problems, fmt.Sprintf("bombs must be below %d", p.Size*p.Size))
	}
	if len(problems) == 0 {
		return nil
	}
	return &ParamError{Params: p, Problems: problems}
}
