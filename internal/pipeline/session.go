package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"specgen/internal"
	"specgen/internal/budget"
	"specgen/internal/catalog"
	"specgen/internal/config"
	"specgen/internal/sheet"
	"specgen/internal/spec"
)

var ErrNoBudget = errors.New("load a budget first")

// Session replaces the UI controller: it owns the catalog store and the
// currently loaded budget, and exposes the operations the front end calls.
type Session struct {
	cfg      config.Config
	store    *catalog.Store
	resolver *spec.Resolver
	budget   []internal.BudgetRow
	now      func() time.Time
	observer Observer
}

func NewSession(cfg config.Config, store *catalog.Store) *Session {
	return &Session{
		cfg:      cfg,
		store:    store,
		resolver: spec.NewResolver(store, cfg.StrictMatch),
		now:      time.Now,
	}
}

func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

func (s *Session) WithObserver(o Observer) *Session {
	s.observer = o
	return s
}

func (s *Session) Resolver() *spec.Resolver {
	return s.resolver
}

func (s *Session) LoadBudgetFile(path string) (int, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return 0, &sheet.ParseError{Name: filepath.Base(path), Err: err}
	}
	return s.LoadBudget(filepath.Base(path), blob)
}

// LoadBudget replaces the current budget only when the new file yields at
// least one valid row.
func (s *Session) LoadBudget(name string, blob []byte) (int, error) {
	grid, err := sheet.ReadGrid(name, blob)
	if err != nil {
		return 0, err
	}
	rows, err := budget.NormalizeGrid(grid, s.cfg.HeaderScanRows)
	if err != nil {
		return 0, err
	}
	s.budget = rows
	if s.observer != nil {
		s.observer(StageNormalized, len(rows))
	}
	return len(rows), nil
}

func (s *Session) Budget() []internal.BudgetRow {
	out := make([]internal.BudgetRow, len(s.budget))
	copy(out, s.budget)
	return out
}

func (s *Session) ClearBudget() {
	s.budget = nil
}

func (s *Session) Ready() bool {
	return s.store.Len() > 0 && len(s.budget) > 0
}

func (s *Session) BudgetPreview() []internal.BudgetRow {
	n := s.cfg.BudgetPreviewRows
	if n <= 0 || n > len(s.budget) {
		n = len(s.budget)
	}
	return s.Budget()[:n]
}

func (s *Session) Preview() ([]PreviewItem, error) {
	if len(s.budget) == 0 {
		return nil, ErrNoBudget
	}
	return Preview(s.budget, s.resolver, s.cfg.PreviewItems), nil
}

func (s *Session) Generate(meta internal.ProjectMeta, format internal.DocumentFormat) (Document, error) {
	if len(s.budget) == 0 {
		return Document{}, ErrNoBudget
	}
	gen := NewGenerator(s.resolver, s.cfg.ProjectName).WithClock(s.now).WithObserver(s.observer)
	return gen.Generate(s.budget, meta, format)
}
