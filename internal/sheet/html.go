package sheet

import (
	"bytes"
	"errors"

	"github.com/PuerkitoBio/goquery"
)

// readHTMLGrid takes the first table with at least two rows, which is how
// budget tools export an orçamento as a web page.
func readHTMLGrid(blob []byte) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}

	var grid [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}
		rows.Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeSpaces(cell.Text()))
			})
			grid = append(grid, cells)
		})
		return false
	})

	if grid == nil {
		return nil, errors.New("no table found")
	}
	return grid, nil
}
