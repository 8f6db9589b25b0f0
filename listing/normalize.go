package listing

import (
	"fmt"
	"time"

	"github.com/use-agent/ordersnap/models"
)

// DropReason says why a raw row did not become an Order. Drops are
// counted by the session controller, never surfaced to the caller.
type DropReason string

const (
	DropInsufficientCells DropReason = "insufficient_cells"
	DropEmptyShipper      DropReason = "empty_shipper"
	DropInvalidPrice      DropReason = "invalid_price"
)

const (
	// orderIDPrefix is the provenance prefix on generated order IDs.
	orderIDPrefix = "ORD"

	// orderSource tags every Order with where it was captured.
	orderSource = "marketplace"

	// cargoTypeLiteral is the fixed cargo-type the caller contract expects.
	cargoTypeLiteral = "General Cargo"

	// displayYear is pinned: the listing markup carries no year, and the
	// caller contract fixes the display string, so it is not inferred
	// from the clock.
	displayYear = "2024"
)

// Cell positions within a RawRow.
const (
	cellShipper = iota
	cellDatetime
	cellRoute
	cellVehicle
	cellPrice
	cellStatus
)

// Normalize converts one RawRow into an Order. The boolean reports
// whether the row survived; on false, the DropReason says why.
//
// The extractor already filters short rows, but the cell count is
// re-checked here so Normalize stays safe on any input. An Order is
// emitted only when the offered price is strictly positive and the
// shipper cell is non-empty.
//
// The generated ID combines the provenance prefix, wall-clock millis at
// normalization and the extraction index. It is unique within one
// extraction pass, not across restarts; IDs are not durable keys.
func Normalize(row RawRow, index int, now time.Time) (models.Order, DropReason, bool) {
	if len(row) < minCells {
		return models.Order{}, DropInsufficientCells, false
	}

	shipper := row[cellShipper]
	if shipper == "" {
		return models.Order{}, DropEmptyShipper, false
	}

	price := ParsePrice(row[cellPrice])
	if price <= 0 {
		return models.Order{}, DropInvalidPrice, false
	}

	rawDatetime := row[cellDatetime]
	day, month, timeOfDay := ParseLoadingDate(rawDatetime)

	rawRoute := row[cellRoute]
	origin, destination := ParseRoute(rawRoute)

	vehicle := row[cellVehicle]

	var date string
	if day != "" || month != "" {
		date = fmt.Sprintf("%s %s %s", day, month, displayYear)
	}

	return models.Order{
		ID:           fmt.Sprintf("%s-%d-%d", orderIDPrefix, now.UnixMilli(), index),
		Shipper:      shipper,
		Date:         date,
		LoadingTime:  timeOfDay,
		Origin:       origin,
		Destination:  destination,
		Route:        rawRoute,
		VehicleType:  vehicle,
		TruckType:    vehicle,
		Price:        price,
		OfferedPrice: price,
		Tonnage:      TonnageFor(vehicle),
		Status:       row[cellStatus],
		Contact:      shipper,
		Deadline:     rawDatetime,
		CargoType:    cargoTypeLiteral,
		Source:       orderSource,
		ScrapedAt:    now,
	}, "", true
}
