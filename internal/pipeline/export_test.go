package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"specgen/internal/catalog"
	"specgen/internal/sheet"
)

func TestCatalogExportFileName(t *testing.T) {
	got := CatalogExportFileName(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	if got != "BASE_DE_DADOS_ESPECIFICACAO_TECNICA_2026-10-14.xlsx" {
		t.Fatalf("got %q", got)
	}
}

func TestExportCatalogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "base.xlsx")
	entries := catalog.SampleEntries()
	if err := ExportCatalogToXLSX(entries, path); err != nil {
		t.Fatal(err)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := sheet.ReadWorkbookRecords("base.xlsx", blob)
	if err != nil {
		t.Fatal(err)
	}
	back := catalog.FromRecords(records)
	if len(back) != len(entries) {
		t.Fatalf("got %d entries", len(back))
	}
	for i := range entries {
		if back[i] != entries[i] {
			t.Fatalf("entry %d: got %+v want %+v", i, back[i], entries[i])
		}
	}
}
