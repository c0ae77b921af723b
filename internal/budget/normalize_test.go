package budget

import (
	"errors"
	"strings"
	"testing"

	"specgen/internal"
)

func TestNormalizeQuantity(t *testing.T) {
	rows, err := Normalize([]internal.Record{
		{"Item": "1.1", "Código": "91.926", "Descrição": "CABO DE COBRE", "Quant.": "1.234,5", "Und": "M", "Banco": "SINAPI"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	row := rows[0]
	if row.Quantity != 1234.5 {
		t.Fatalf("qty=%v", row.Quantity)
	}
	if row.Code != "91926" {
		t.Fatalf("code=%q", row.Code)
	}
	if row.Unit != "M" || row.Bank != "SINAPI" {
		t.Fatalf("unit/bank=%q/%q", row.Unit, row.Bank)
	}
	if row.Raw["Quant."] != "1.234,5" {
		t.Fatal("raw record not kept")
	}
}

func TestNormalizeFilters(t *testing.T) {
	cases := []struct {
		name string
		rec  internal.Record
	}{
		{name: "total row", rec: internal.Record{"Item": "Total Geral", "Código": "1", "Descrição": "X", "Quant.": "1"}},
		{name: "subtotal row", rec: internal.Record{"Item": "SUBTOTAL", "Código": "1", "Descrição": "X", "Quant.": "1"}},
		{name: "nan item", rec: internal.Record{"Item": "NaN", "Código": "1", "Descrição": "X", "Quant.": "1"}},
		{name: "empty item", rec: internal.Record{"Item": "  ", "Código": "1", "Descrição": "X", "Quant.": "1"}},
		{name: "missing code", rec: internal.Record{"Item": "1", "Descrição": "X", "Quant.": "1"}},
		{name: "blank description", rec: internal.Record{"Item": "1", "Código": "1", "Descrição": " ", "Quant.": "1"}},
		{name: "zero qty", rec: internal.Record{"Item": "1", "Código": "1", "Descrição": "X", "Quant.": "0,00"}},
		{name: "negative qty", rec: internal.Record{"Item": "1", "Código": "1", "Descrição": "X", "Quant.": "-2"}},
		{name: "missing qty", rec: internal.Record{"Item": "1", "Código": "1", "Descrição": "X"}},
		{name: "unparseable qty", rec: internal.Record{"Item": "1", "Código": "1", "Descrição": "X", "Quant.": "vb"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize([]internal.Record{tc.rec})
			var nerr *NoValidRowsError
			if !errors.As(err, &nerr) {
				t.Fatalf("row should be dropped, err=%v", err)
			}
		})
	}
}

func TestNormalizeAliases(t *testing.T) {
	rows, err := Normalize([]internal.Record{
		{"Item": "2", "Codigo": "A-1", "Descricao": "TOMADA", "QTDE": "3", "UNID": "UN"},
		{"Item": "3", "Código": "B1", "Codigo": "ignored", "Descrição": "INTERRUPTOR", "Quantidade": "2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0].Code != "A1" || rows[0].Unit != "UN" || rows[0].Quantity != 3 {
		t.Fatalf("row0=%+v", rows[0])
	}
	if rows[1].Code != "B1" {
		t.Fatalf("accented alias must win, got %q", rows[1].Code)
	}
}

func TestNoValidRowsMessage(t *testing.T) {
	_, err := Normalize(nil)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, col := range []string{"'Item'", "'Código'", "'Quant.'"} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("message %q does not name %s", err.Error(), col)
		}
	}
}

func TestNormalizeTypedQuantityTakenAsIs(t *testing.T) {
	rows, err := Normalize([]internal.Record{
		{"Item": "1.1", "Código": "1", "Descrição": "CABO", "Quant.": 2.5},
		{"Item": "1.2", "Código": "2", "Descrição": "CABO", "Quant.": "2.5"},
		{"Item": "1.3", "Código": "3", "Descrição": "CABO", "Quant.": "2,5"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2.5, 25, 2.5}
	for i, w := range want {
		if rows[i].Quantity != w {
			t.Fatalf("row %d: got %v want %v", i, rows[i].Quantity, w)
		}
	}
}
