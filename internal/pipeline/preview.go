package pipeline

import (
	"specgen/internal"
	"specgen/internal/util"
)

type PreviewItem struct {
	ItemID      string
	Description string
	Code        string
	Quantity    string
	Unit        string
	Spec        string
}

// Preview resolves the first limit rows in load order.
func Preview(rows []internal.BudgetRow, resolver SpecResolver, limit int) []PreviewItem {
	if limit > len(rows) || limit <= 0 {
		limit = len(rows)
	}
	out := make([]PreviewItem, 0, limit)
	for _, row := range rows[:limit] {
		out = append(out, PreviewItem{
			ItemID:      row.ItemID,
			Description: row.Description,
			Code:        orDefault(row.Code, notAvailable),
			Quantity:    util.FormatQuantity(row.Quantity),
			Unit:        row.Unit,
			Spec:        resolver.Resolve(row),
		})
	}
	return out
}
