package sheet

import (
	"bytes"
	"encoding/csv"
	"strings"
)

func readCSVGrid(blob []byte) ([][]string, error) {
	blob = bytes.TrimPrefix(blob, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(blob))
	r.Comma = detectDelimiter(blob)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// detectDelimiter prefers ';' when the first line has more of them than
// commas, the usual layout of pt-BR exports where ',' is the decimal mark.
func detectDelimiter(blob []byte) rune {
	first, _, _ := strings.Cut(string(blob), "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
