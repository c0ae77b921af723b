package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"specgen/internal"
)

type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to read %s, check the file format: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errUnsupported = errors.New("unsupported file type")

var reSpaces = regexp.MustCompile(`\s+`)

// Supported reports whether ReadGrid knows the file extension of name.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".html", ".htm", ".csv", ".txt":
		return true
	}
	return false
}

// ReadGrid decodes the first sheet (or first table) of a budget file into
// rows of cell text. The codec is chosen by file extension.
func ReadGrid(name string, blob []byte) ([][]string, error) {
	var (
		grid [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx":
		grid, err = readXLSXGrid(blob)
	case ".html", ".htm":
		grid, err = readHTMLGrid(blob)
	case ".csv", ".txt":
		grid, err = readCSVGrid(blob)
	default:
		err = fmt.Errorf("%w: %s", errUnsupported, filepath.Ext(name))
	}
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	return grid, nil
}

// GridToRecords keys each row after headerRow by the header cell above it.
// Empty cells produce no key and fully blank rows are skipped.
func GridToRecords(grid [][]string, headerRow int) []internal.Record {
	if headerRow < 0 || headerRow >= len(grid) {
		return nil
	}
	headers := uniqueHeaders(grid[headerRow])

	out := make([]internal.Record, 0, len(grid)-headerRow-1)
	for _, row := range grid[headerRow+1:] {
		rec := internal.Record{}
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			rec[headers[i]] = cell
		}
		if len(rec) == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func uniqueHeaders(row []string) []string {
	seen := map[string]int{}
	out := make([]string, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			out[i] = fmt.Sprintf("%s_%d", h, n+1)
			continue
		}
		seen[h] = 0
		out[i] = h
	}
	return out
}

func normalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}
