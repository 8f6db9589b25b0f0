package listing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// RawRow is the ordered cell texts captured from one listing row.
// It has no identity beyond its position in the extraction pass and is
// discarded after normalization.
type RawRow []string

// minCells is the structural minimum for a data row: shipper, datetime,
// route, vehicle type, price and status.
const minCells = 6

// The listing markup shows up in a few structural variants: a plain
// table, and card layouts whose wrappers carry an "order"-like class
// token. Matchers are compiled once; new variants are additive entries.
var (
	tableRowSel = cascadia.MustCompile("tr")
	cardRowSel  = cascadia.MustCompile(`[class*="order-row"], [class*="order-item"], [class*="order-card"]`)
	cellSel     = cascadia.MustCompile("td")
)

// headerLabels are first-cell texts that mark a header row rather than
// data, compared case-insensitively.
var headerLabels = map[string]struct{}{
	"shipper":  {},
	"pengirim": {},
	"nama":     {},
	"no":       {},
	"no.":      {},
	"#":        {},
	"tanggal":  {},
	"customer": {},
}

// ExtractRows enumerates row-like elements in the rendered listing HTML
// and captures each row's trimmed cell texts. Rows with fewer than
// minCells cells and header rows are skipped silently. One pass per
// call; re-invoke to extract again.
func ExtractRows(html string) ([]RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	rows := doc.FindMatcher(tableRowSel)
	if rows.Length() == 0 {
		rows = doc.FindMatcher(cardRowSel)
	}

	var out []RawRow
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := rowCells(row)
		if len(cells) < minCells {
			return
		}
		if _, isHeader := headerLabels[strings.ToLower(cells[0])]; isHeader {
			return
		}
		out = append(out, cells)
	})
	return out, nil
}

// rowCells reads the row's cell texts: td elements for table rows, or
// direct children for the card variants.
func rowCells(row *goquery.Selection) RawRow {
	cells := row.FindMatcher(cellSel)
	if cells.Length() == 0 {
		cells = row.Children()
	}

	texts := make(RawRow, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, collapseSpace(cell.Text()))
	})
	return texts
}

// collapseSpace trims the text and folds internal whitespace runs into
// single spaces, matching what a user sees rendered.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
