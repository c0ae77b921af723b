package pipeline

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"specgen/internal"
)

// Organize sorts rows by dotted item id and attaches level and leaf flags.
// Leafness depends on the whole set, so it is recomputed on every call.
func Organize(rows []internal.BudgetRow) []internal.LeveledRow {
	out := make([]internal.LeveledRow, len(rows))
	for i, row := range rows {
		out[i] = internal.LeveledRow{BudgetRow: row, Level: Level(row.ItemID)}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return CompareItemIDs(out[i].ItemID, out[j].ItemID) < 0
	})

	for i := range out {
		out[i].IsLeaf = IsLeaf(out[i].ItemID, out)
	}
	return out
}

func Level(itemID string) int {
	return strings.Count(itemID, ".")
}

// CompareItemIDs compares ids segment by segment as numbers. Missing and
// non-numeric segments count as 0.
func CompareItemIDs(a, b string) int {
	as := segments(a)
	bs := segments(b)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0.0, 0.0
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func segments(id string) []float64 {
	parts := strings.Split(id, ".")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) {
			v = 0
		}
		out[i] = v
	}
	return out
}

// IsLeaf reports whether no row id starts with itemID + ".". This is a
// literal prefix test on the formatted ids.
func IsLeaf(itemID string, rows []internal.LeveledRow) bool {
	prefix := itemID + "."
	for _, other := range rows {
		if strings.HasPrefix(other.ItemID, prefix) {
			return false
		}
	}
	return true
}
