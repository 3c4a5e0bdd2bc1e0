package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"svw.info/minesweeper/internal/domain"
)

func TestSaveLoadList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFS(dir)

	recs := []*domain.Record{
		{ID: "a", Size: 10, Bombs: 20, Status: domain.EndedWin, FinishedAt: 100},
		{ID: "b", Size: 5, Bombs: 3, Status: domain.EndedLoss, FinishedAt: 300},
		{ID: "c", Size: 8, Bombs: 10, Status: domain.EndedWin, FinishedAt: 200},
	}
	for _, r := range recs {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s): %v", r.ID, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "lost", "b.json")); err != nil {
		t.Fatalf("lost record not bucketed: %v", err)
	}

	got, err := s.Load(ctx, "c")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Size != 8 || got.Status != domain.EndedWin {
		t.Fatalf("Load = %+v", got)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].ID != "b" || list[1].ID != "c" || list[2].ID != "a" {
		t.Fatalf("List order = %+v, want b,c,a", list)
	}
}

func TestSaveRejects(t *testing.T) {
	s := NewFS(t.TempDir())
	cases := []struct {
		name string
		r    *domain.Record
	}{
		{"nil", nil},
		{"no id", &domain.Record{Status: domain.EndedWin}},
		{"path id", &domain.Record{ID: "../x", Status: domain.EndedWin}},
		{"running", &domain.Record{ID: "x", Status: domain.InProgress}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Save(context.Background(), tc.r); err == nil {
				t.Fatalf("Save accepted %+v", tc.r)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	s := NewFS(t.TempDir())
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
	list, err := s.List(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("List on empty dir = %v, %v", list, err)
	}
}
