package listing

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNormalize_ValidRow(t *testing.T) {
	row := RawRow{"Shipper X", "10 Januari 08:00", "Jakarta - Bandung", "CDE", "Rp 500.000", "Open"}

	order, _, ok := Normalize(row, 0, testNow)
	if !ok {
		t.Fatal("valid row was dropped")
	}
	if order.Shipper != "Shipper X" {
		t.Errorf("shipper = %q", order.Shipper)
	}
	if order.Price != 500000 || order.OfferedPrice != 500000 {
		t.Errorf("price = %d / %d, want 500000 twice", order.Price, order.OfferedPrice)
	}
	if order.Tonnage != 3 {
		t.Errorf("tonnage = %d, want 3", order.Tonnage)
	}
	if order.Origin != "Jakarta" || order.Destination != "Bandung" {
		t.Errorf("route = %q -> %q", order.Origin, order.Destination)
	}
	if order.Date != "10 Januari 2024" {
		t.Errorf("date = %q", order.Date)
	}
	if order.LoadingTime != "08:00" {
		t.Errorf("loadingTime = %q", order.LoadingTime)
	}
	if order.VehicleType != "CDE" || order.TruckType != "CDE" {
		t.Errorf("vehicle fields = %q / %q", order.VehicleType, order.TruckType)
	}
	if order.Contact != order.Shipper {
		t.Errorf("contact %q should alias shipper %q", order.Contact, order.Shipper)
	}
	if order.Deadline != "10 Januari 08:00" {
		t.Errorf("deadline = %q, want raw datetime text", order.Deadline)
	}
	if order.Status != "Open" {
		t.Errorf("status = %q", order.Status)
	}
	if !strings.HasPrefix(order.ID, "ORD-") {
		t.Errorf("id %q missing provenance prefix", order.ID)
	}
	if !order.ScrapedAt.Equal(testNow) {
		t.Errorf("scrapedAt = %v", order.ScrapedAt)
	}
}

func TestNormalize_ShortRowNeverBecomesOrder(t *testing.T) {
	for n := 0; n < minCells; n++ {
		row := make(RawRow, n)
		for i := range row {
			row[i] = "x"
		}
		if _, reason, ok := Normalize(row, 0, testNow); ok || reason != DropInsufficientCells {
			t.Errorf("%d-cell row: ok=%v reason=%q, want drop with insufficient_cells", n, ok, reason)
		}
	}
}

func TestNormalize_EmptyShipper(t *testing.T) {
	row := RawRow{"", "5 Februari 10:00", "Solo - Semarang", "Tronton", "Rp 100.000", "Open"}
	if _, reason, ok := Normalize(row, 0, testNow); ok || reason != DropEmptyShipper {
		t.Errorf("ok=%v reason=%q, want drop with empty_shipper", ok, reason)
	}
}

func TestNormalize_InvalidPrice(t *testing.T) {
	for _, price := range []string{"", "Nego", "Rp 0"} {
		row := RawRow{"Shipper Y", "5 Februari 10:00", "Solo - Semarang", "Tronton", price, "Open"}
		if _, reason, ok := Normalize(row, 0, testNow); ok || reason != DropInvalidPrice {
			t.Errorf("price %q: ok=%v reason=%q, want drop with invalid_price", price, ok, reason)
		}
	}
}

func TestNormalize_EmittedOrdersHoldInvariants(t *testing.T) {
	rows := []RawRow{
		{"Shipper A", "10 Januari 08:00", "Jakarta - Bandung", "CDE", "Rp 500.000", "Open"},
		{"", "5 Februari 10:00", "Solo - Semarang", "Tronton", "", ""},
		{"Shipper B", "garbage", "NoHyphenRoute", "Odd Truck", "1", "?"},
		{"Shipper C", "", "", "", "free", ""},
	}
	for i, row := range rows {
		order, _, ok := Normalize(row, i, testNow)
		if !ok {
			continue
		}
		if order.OfferedPrice <= 0 {
			t.Errorf("row %d: emitted order with non-positive price %d", i, order.OfferedPrice)
		}
		if order.Shipper == "" {
			t.Errorf("row %d: emitted order with empty shipper", i)
		}
	}
}

func TestNormalize_UnparseableDatetime(t *testing.T) {
	row := RawRow{"Shipper Z", "segera", "Jakarta - Medan", "CDD", "250000", "Open"}
	order, _, ok := Normalize(row, 0, testNow)
	if !ok {
		t.Fatal("row was dropped")
	}
	if order.Date != "" || order.LoadingTime != "" {
		t.Errorf("date/time should stay empty on unparseable input, got %q / %q",
			order.Date, order.LoadingTime)
	}
	if order.Deadline != "segera" {
		t.Errorf("deadline should keep the raw text, got %q", order.Deadline)
	}
}

func TestNormalize_IDsUniqueWithinPass(t *testing.T) {
	row := RawRow{"Shipper X", "10 Januari 08:00", "Jakarta - Bandung", "CDE", "Rp 500.000", "Open"}
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		order, _, ok := Normalize(row, i, testNow)
		if !ok {
			t.Fatal("row was dropped")
		}
		if _, dup := seen[order.ID]; dup {
			t.Fatalf("duplicate id %q at index %d", order.ID, i)
		}
		seen[order.ID] = struct{}{}
	}
}
