package listing

import (
	"testing"
	"time"
)

const tableListingHTML = `<!doctype html><html><body>
<table class="order-table">
  <tr><td>Shipper</td><td>Tanggal Muat</td><td>Rute</td><td>Armada</td><td>Harga</td><td>Status</td></tr>
  <tr><td>Shipper X</td><td>10 Januari 08:00</td><td>Jakarta - Bandung</td><td>CDE</td><td>Rp 500.000</td><td>Open</td></tr>
  <tr><td></td><td>5 Februari 10:00</td><td>Solo - Semarang</td><td>Tronton</td><td></td><td></td></tr>
  <tr><td>Incomplete</td><td>only two cells</td></tr>
</table>
</body></html>`

const cardListingHTML = `<!doctype html><html><body>
<div class="order-list">
  <div class="order-item">
    <span>PT Maju Jaya</span><span>12 Maret 09:00</span><span>Surabaya - Malang</span>
    <span>Wingbox</span><span>Rp 1.200.000</span><span>Open</span>
  </div>
  <div class="order-item">
    <span>CV Sentosa</span><span>13 Maret 07:30</span><span>Bandung - Cirebon</span>
    <span>CDD</span><span>Rp 750.000</span><span>Open</span>
  </div>
</div>
</body></html>`

func TestExtractRows_TableVariant(t *testing.T) {
	rows, err := ExtractRows(tableListingHTML)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	// Header and the two-cell row are skipped; the empty-shipper row is
	// structurally complete and survives extraction (normalization drops it).
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}
	if rows[0][0] != "Shipper X" {
		t.Errorf("first cell = %q", rows[0][0])
	}
	if rows[1][0] != "" {
		t.Errorf("empty shipper cell should stay empty, got %q", rows[1][0])
	}
}

func TestExtractRows_CardVariant(t *testing.T) {
	rows, err := ExtractRows(cardListingHTML)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}
	if rows[0][0] != "PT Maju Jaya" || rows[0][3] != "Wingbox" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
}

func TestExtractRows_WhitespaceCollapsed(t *testing.T) {
	html := `<table><tr>
		<td>  Shipper
		X  </td><td>10 Januari 08:00</td><td>Jakarta - Bandung</td><td>CDE</td><td>Rp 500.000</td><td>Open</td>
	</tr></table>`
	rows, err := ExtractRows(html)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "Shipper X" {
		t.Errorf("cell text not collapsed: %q", rows[0][0])
	}
}

func TestExtractRows_NoListing(t *testing.T) {
	rows, err := ExtractRows(`<html><body><p>nothing here</p></body></html>`)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows from empty page", len(rows))
	}
}

func TestExtractAndNormalize_EndToEnd(t *testing.T) {
	rows, err := ExtractRows(tableListingHTML)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var orders []string
	for i, row := range rows {
		order, _, ok := Normalize(row, i, now)
		if !ok {
			continue
		}
		orders = append(orders, order.ID)

		if order.Shipper != "Shipper X" {
			t.Errorf("shipper = %q", order.Shipper)
		}
		if order.Price != 500000 {
			t.Errorf("price = %d, want 500000", order.Price)
		}
		if order.Tonnage != 3 {
			t.Errorf("tonnage = %d, want 3", order.Tonnage)
		}
		if order.Origin != "Jakarta" || order.Destination != "Bandung" {
			t.Errorf("route = %q -> %q", order.Origin, order.Destination)
		}
	}

	// Row A survives; row B (empty shipper, zero price) is dropped.
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want exactly 1", len(orders))
	}
}
