package catalog

import (
	"os"
	"path/filepath"
	"time"

	"specgen/internal"
	"specgen/internal/config"
	"specgen/internal/sheet"
	"specgen/internal/storage"
)

type LoadService struct {
	db    *storage.DB
	store *Store
	now   func() time.Time
}

func NewLoadService(db *storage.DB, cfg config.Config) *LoadService {
	return &LoadService{db: db, store: NewStore(cfg.StrictMatch), now: time.Now}
}

func (s *LoadService) Store() *Store {
	return s.store
}

// Restore fills the store from the persisted collection, seeding and
// persisting the sample entries when nothing has been stored yet.
func (s *LoadService) Restore() (int, error) {
	entries, err := s.db.ListSpecEntries()
	if err != nil {
		return 0, err
	}
	name, err := s.db.GetMetadata(storage.MetaName)
	if err != nil {
		return 0, err
	}
	updated, err := s.db.GetMetadata(storage.MetaLastUpdated)
	if err != nil {
		return 0, err
	}

	// A loaded workbook may legitimately hold zero entries; only seed when
	// nothing was ever loaded.
	if len(entries) == 0 && name == nil {
		entries = SampleEntries()
		if err := s.db.ReplaceSpecEntries(entries, nil); err != nil {
			return 0, err
		}
	}

	source := ""
	if name != nil {
		source = *name
	}
	s.store.Replace(entries, source, updated)
	return len(entries), nil
}

func (s *LoadService) LoadFile(path string) (int, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return s.Load(filepath.Base(path), blob)
}

// Load parses a reference workbook and replaces both the persisted and the
// in-memory collection. On any error the previous collection stays.
func (s *LoadService) Load(name string, blob []byte) (int, error) {
	records, err := sheet.ReadWorkbookRecords(name, blob)
	if err != nil {
		return 0, err
	}
	entries := FromRecords(records)
	return len(entries), s.replace(entries, name)
}

func (s *LoadService) replace(entries []internal.SpecEntry, name string) error {
	updated := s.now().UTC().Format(time.RFC3339)
	meta := map[string]string{
		storage.MetaLastUpdated: updated,
		storage.MetaName:        name,
	}
	if err := s.db.ReplaceSpecEntries(entries, meta); err != nil {
		return err
	}
	s.store.Replace(entries, name, &updated)
	return nil
}
