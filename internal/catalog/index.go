package catalog

import (
	"strings"

	"specgen/internal"
)

type Index struct {
	FirstByCode       map[string]int
	LowerDescriptions []string
}

func BuildIndex(entries []internal.SpecEntry) *Index {
	idx := &Index{
		FirstByCode:       map[string]int{},
		LowerDescriptions: make([]string, len(entries)),
	}
	for pos, e := range entries {
		if _, ok := idx.FirstByCode[e.Code]; !ok {
			idx.FirstByCode[e.Code] = pos
		}
		idx.LowerDescriptions[pos] = strings.ToLower(e.Description)
	}
	return idx
}
