package budget

import (
	"fmt"
	"strings"

	"specgen/internal"
	"specgen/internal/util"
)

const (
	FieldItem        = "Item"
	FieldCode        = "Código"
	FieldDescription = "Descrição"
	FieldQuantity    = "Quant."
	FieldBank        = "Banco"
	FieldUnit        = "Und"
)

// aliases are tried in order; the first key present in a record wins.
var aliases = map[string][]string{
	FieldItem:        {"Item"},
	FieldCode:        {"Código", "Codigo"},
	FieldDescription: {"Descrição", "Descricao"},
	FieldQuantity:    {"Quant.", "Quant", "QTDE", "Quantidade"},
	FieldBank:        {"Banco"},
	FieldUnit:        {"Und", "UNID"},
}

type NoValidRowsError struct {
	Scanned int
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("the file was read (%d rows) but holds no valid items or the expected columns were not found; check the 'Item', 'Código' and 'Quant.' columns", e.Scanned)
}

// Normalize maps header-keyed records to budget rows. Rows without an item,
// footer/total rows, rows lacking code or description and rows whose
// quantity is not positive are dropped. Quantity strings follow the pt-BR
// rewrite ('.' removed, first ',' as decimal point); typed numbers are taken
// as they are.
func Normalize(records []internal.Record) ([]internal.BudgetRow, error) {
	out := make([]internal.BudgetRow, 0, len(records))
	for _, rec := range records {
		row, ok := normalizeRecord(rec)
		if !ok {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, &NoValidRowsError{Scanned: len(records)}
	}
	return out, nil
}

func normalizeRecord(rec internal.Record) (internal.BudgetRow, bool) {
	itemValue, _ := lookup(rec, FieldItem)
	item := strings.TrimSpace(util.ToString(itemValue))
	if item == "" {
		return internal.BudgetRow{}, false
	}
	lowerItem := strings.ToLower(item)
	if strings.Contains(lowerItem, "total") || strings.Contains(lowerItem, "nan") {
		return internal.BudgetRow{}, false
	}

	codeValue, _ := lookup(rec, FieldCode)
	descValue, _ := lookup(rec, FieldDescription)
	code := strings.TrimSpace(util.ToString(codeValue))
	desc := strings.TrimSpace(util.ToString(descValue))
	if code == "" || desc == "" {
		return internal.BudgetRow{}, false
	}

	qty := 0.0
	if qtyValue, ok := lookup(rec, FieldQuantity); ok {
		qty = util.ParseQuantity(qtyValue)
	}
	if qty <= 0 {
		return internal.BudgetRow{}, false
	}

	bank, _ := lookup(rec, FieldBank)
	unit, _ := lookup(rec, FieldUnit)

	return internal.BudgetRow{
		ItemID:      item,
		Code:        util.CleanCode(code),
		Description: desc,
		Unit:        util.ToString(unit),
		Quantity:    qty,
		Bank:        util.ToString(bank),
		Raw:         rec,
	}, true
}

func lookup(rec internal.Record, field string) (any, bool) {
	for _, key := range aliases[field] {
		if v, ok := rec[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
