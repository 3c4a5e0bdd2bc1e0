package validator

import (
	"context"
	"errors"
	"testing"

	"svw.info/minesweeper/internal/domain"
)

func TestValidate(t *testing.T) {
	v := New(16)
	cases := []struct {
		name     string
		p        domain.Params
		problems int
	}{
		{"classic", domain.Params{Size: 10, Bombs: 20}, 0},
		{"no bombs", domain.Params{Size: 2, Bombs: 0}, 0},
		{"one safe cell", domain.Params{Size: 4, Bombs: 15}, 0},
		{"full board", domain.Params{Size: 4, Bombs: 16}, 1},
		{"too small", domain.Params{Size: 1, Bombs: 0}, 1},
		{"too big", domain.Params{Size: 17, Bombs: 10}, 1},
		{"negative bombs", domain.Params{Size: 5, Bombs: -1}, 1},
		{"everything wrong", domain.Params{Size: 0, Bombs: -3}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tc.p)
			if tc.problems == 0 {
				if err != nil {
					t.Fatalf("Validate(%+v) = %v, want nil", tc.p, err)
				}
				return
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("Validate(%+v) = %v, want *ParamError", tc.p, err)
			}
			if len(pe.Problems) != tc.problems {
				t.Fatalf("problems = %v, want %d", pe.Problems, tc.problems)
			}
		})
	}
}

func TestNewDefaultsMaxSize(t *testing.T) {
	if v := New(0); v.MaxSize != DefaultMaxSize {
		t.Fatalf("MaxSize = %d, want %d", v.MaxSize, DefaultMaxSize)
	}
}
