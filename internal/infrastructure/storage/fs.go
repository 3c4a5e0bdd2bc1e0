package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/minesweeper/internal/domain"
)

// FS keeps finished game records as JSON files bucketed by outcome:
// <dir>/won/<id>.json and <dir>/lost/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func outcomeDir(s domain.Status) string {
	if s == domain.EndedWin {
		return "won"
	}
	return "lost"
}

var buckets = []domain.Status{domain.EndedWin, domain.EndedLoss}

func (s *FS) pathFor(id string, st domain.Status) string {
	return filepath.Join(s.dir, outcomeDir(st), strings.TrimSpace(id)+".json")
}

func validID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (s *FS) Save(ctx context.Context, r *domain.Record) error {
	if r == nil || !validID(r.ID) {
		return errors.New("invalid record: missing ID")
	}
	if !r.Status.Ended() {
		return errors.New("invalid record: game still in progress")
	}
	target := s.pathFor(r.ID, r.Status)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Record, error) {
	if !validID(id) {
		return nil, os.ErrNotExist
	}
	for _, st := range buckets {
		data, err := os.ReadFile(s.pathFor(id, st))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var out domain.Record
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		// The bucket is authoritative for the outcome.
		out.Status = st
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// List returns every stored record, newest first.
func (s *FS) List(ctx context.Context) ([]domain.RecordMeta, error) {
	var out []domain.RecordMeta
	for _, st := range buckets {
		dir := filepath.Join(s.dir, outcomeDir(st))
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var r domain.Record
			if err := json.Unmarshal(data, &r); err != nil || r.ID == "" {
				continue
			}
			out = append(out, domain.RecordMeta{
				ID:         r.ID,
				Size:       r.Size,
				Bombs:      r.Bombs,
				Status:     st,
				FinishedAt: r.FinishedAt,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FinishedAt > out[j].FinishedAt })
	return out, nil
}
