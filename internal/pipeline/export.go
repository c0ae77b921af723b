package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"specgen/internal"
	"specgen/internal/catalog"
)

const catalogSheet = "Base de Dados"

func CatalogExportFileName(now time.Time) string {
	return "BASE_DE_DADOS_ESPECIFICACAO_TECNICA_" + now.Format("2006-01-02") + ".xlsx"
}

func ExportCatalogToXLSX(entries []internal.SpecEntry, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), catalogSheet); err != nil {
		return err
	}

	headers := []string{catalog.ColumnCode, catalog.ColumnBank, catalog.ColumnDescription, catalog.ColumnSpecText}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(catalogSheet, cell, h)
	}

	for i, e := range entries {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(catalogSheet, cell, value)
		}

		set(1, e.Code)
		set(2, e.Bank)
		set(3, e.Description)
		set(4, e.SpecText)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
