package budget

import (
	"strings"

	"specgen/internal"
)

// headerMarkers drive the grid variant: a header cell belongs to a field
// when it contains one of the markers.
var headerMarkers = []struct {
	field  string
	markers []string
}{
	{FieldItem, []string{"Item"}},
	{FieldCode, []string{"Código", "Codigo"}},
	{FieldDescription, []string{"Descrição", "Descricao"}},
	{FieldQuantity, []string{"Quant", "QTDE"}},
	{FieldBank, []string{"Banco"}},
	{FieldUnit, []string{"Und", "UNID"}},
}

// FindHeaderRow returns the index of the first row within the first scan
// rows whose first cell is exactly "Item" and which mentions Descrição
// somewhere. -1 when none qualifies.
func FindHeaderRow(grid [][]string, scan int) int {
	for i := 0; i < len(grid) && i < scan; i++ {
		row := grid[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) != "Item" {
			continue
		}
		for _, cell := range row {
			if strings.Contains(cell, "Descrição") || strings.Contains(cell, "Descricao") {
				return i
			}
		}
	}
	return -1
}

// NormalizeGrid locates the header row of a raw cell grid, resolves the
// canonical columns by substring match and normalizes the rows below it.
// Without a recognizable header the first row is used.
func NormalizeGrid(grid [][]string, scan int) ([]internal.BudgetRow, error) {
	headerIdx := FindHeaderRow(grid, scan)
	if headerIdx < 0 {
		headerIdx = 0
	}
	if headerIdx >= len(grid) {
		return nil, &NoValidRowsError{}
	}

	columns := resolveColumns(grid[headerIdx])
	records := make([]internal.Record, 0, len(grid)-headerIdx-1)
	for _, row := range grid[headerIdx+1:] {
		rec := internal.Record{}
		for field, idx := range columns {
			if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
				rec[field] = row[idx]
			}
		}
		if len(rec) == 0 {
			continue
		}
		rec[rawRowKey] = row
		records = append(records, rec)
	}
	return Normalize(records)
}

const rawRowKey = "_row"

func resolveColumns(header []string) map[string]int {
	columns := map[string]int{}
	for _, hp := range headerMarkers {
		for i, cell := range header {
			if containsAny(cell, hp.markers) {
				columns[hp.field] = i
				break
			}
		}
	}
	return columns
}

func containsAny(s string, markers []string) bool {
	for _, p := range markers {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
