package sheet

import (
	"bytes"
	"errors"

	"github.com/xuri/excelize/v2"

	"specgen/internal"
)

func readXLSXGrid(blob []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// ReadWorkbookRecords reads every sheet of a workbook using its first row
// as header and concatenates the records in sheet order.
func ReadWorkbookRecords(name string, blob []byte) ([]internal.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	defer f.Close()

	out := []internal.Record{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
		if len(rows) == 0 {
			continue
		}
		out = append(out, GridToRecords(rows, 0)...)
	}
	return out, nil
}
