package catalog

import (
	"encoding/json"
	"math"
	"strings"
	"sync"

	"specgen/internal"
	"specgen/internal/util"
)

// Store is the in-memory reference collection. It only changes through
// Replace, which swaps the whole collection.
type Store struct {
	mu         sync.RWMutex
	entries    []internal.SpecEntry
	index      *Index
	strict     bool
	lastUpdate *string
	source     string
}

func NewStore(strict bool) *Store {
	return &Store{index: BuildIndex(nil), strict: strict}
}

func (s *Store) Replace(entries []internal.SpecEntry, source string, updatedAt *string) {
	cp := make([]internal.SpecEntry, len(entries))
	copy(cp, entries)
	idx := BuildIndex(cp)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = cp
	s.index = idx
	s.source = source
	s.lastUpdate = updatedAt
}

func (s *Store) Entries() []internal.SpecEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]internal.SpecEntry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// LookupByCode returns the first entry, in stored order, whose code equals code.
func (s *Store) LookupByCode(code string) (internal.SpecEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index.FirstByCode[code]
	if !ok {
		return internal.SpecEntry{}, false
	}
	return s.entries[pos], true
}

// LookupByDescription cleans text down to its lookup prefix and returns the
// first entry whose description contains it, ignoring case. An empty prefix
// matches the first entry that has a description at all.
func (s *Store) LookupByDescription(text string) (internal.SpecEntry, bool) {
	query := strings.ToLower(util.DescriptionQuery(text, s.strict))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for pos, desc := range s.index.LowerDescriptions {
		if desc == "" {
			continue
		}
		if strings.Contains(desc, query) {
			return s.entries[pos], true
		}
	}
	return internal.SpecEntry{}, false
}

// Search filters by case-insensitive substring over code, description,
// bank and spec text. An empty query keeps everything.
func (s *Store) Search(query string) []internal.SpecEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]internal.SpecEntry, 0, len(s.entries))
	q := strings.ToLower(query)
	for _, e := range s.entries {
		if q == "" ||
			util.ContainsFold(e.Code, q) ||
			util.ContainsFold(e.Description, q) ||
			util.ContainsFold(e.Bank, q) ||
			util.ContainsFold(e.SpecText, q) {
			out = append(out, e)
		}
	}
	return out
}

type Page struct {
	Items      []internal.SpecEntry
	Total      int
	Page       int
	TotalPages int
}

func Paginate(items []internal.SpecEntry, page, size int) Page {
	if size <= 0 {
		size = 10
	}
	if page < 1 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(len(items)) / float64(size)))
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page{Items: items[start:end], Total: len(items), Page: page, TotalPages: totalPages}
}

func (s *Store) Info() internal.CatalogInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	banks := map[string]struct{}{}
	for _, e := range s.entries {
		if e.Bank != "" {
			banks[e.Bank] = struct{}{}
		}
	}
	blob, _ := json.Marshal(s.entries)
	return internal.CatalogInfo{
		TotalItems: len(s.entries),
		Banks:      len(banks),
		LastUpdate: s.lastUpdate,
		SizeKB:     math.Round(float64(len(blob))/1024*100) / 100,
	}
}

// Excerpt returns the first 200 runes of the specification text stored under code.
func (s *Store) Excerpt(code string) (string, bool) {
	e, ok := s.LookupByCode(code)
	if !ok {
		return "", false
	}
	r := []rune(e.SpecText)
	if len(r) > 200 {
		r = r[:200]
	}
	return string(r) + "...", true
}
