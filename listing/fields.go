// Package listing turns the rendered marketplace listing page into
// normalized Order records. Everything here is pure: the browser layer
// hands over a rendered-HTML snapshot and cell texts, and gets typed
// values back. Parsers are total — unparseable input degrades to a
// zero value instead of failing the row.
package listing

import (
	"regexp"
	"strconv"
	"strings"
)

// loadingDateRe matches "<day> <month-word> <hh:mm>" anywhere inside the
// raw datetime cell, e.g. "10 Januari 08:00" or "Muat 5 Feb 14.30".
var loadingDateRe = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{1,2}[:.]\d{2})`)

// ParsePrice strips every non-digit character and parses the rest as a
// non-negative integer. "Rp 150.000" -> 150000, "150000" -> 150000,
// "" -> 0.
func ParsePrice(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// ParseRoute splits a route string on a literal hyphen into trimmed
// origin and destination. A missing side comes back as "".
func ParseRoute(raw string) (origin, destination string) {
	parts := strings.SplitN(raw, "-", 2)
	origin = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		destination = strings.TrimSpace(parts[1])
	}
	return origin, destination
}

// ParseLoadingDate extracts the day number, month word and time-of-day
// from the raw datetime cell. All three come back empty when the cell
// does not match.
func ParseLoadingDate(raw string) (day, month, timeOfDay string) {
	m := loadingDateRe.FindStringSubmatch(raw)
	if m == nil {
		return "", "", ""
	}
	return m[1], m[2], strings.ReplaceAll(m[3], ".", ":")
}

// tonnageClass maps a vehicle-type keyword to a tonnage class. The
// table is checked in order and the first matching keyword wins;
// raw vehicle text can contain more than one keyword.
type tonnageClass struct {
	keyword string
	tons    int
}

var tonnageClasses = []tonnageClass{
	{"tronton", 15},
	{"wingbox", 8},
	{"cdd", 5},
	{"cde", 3},
}

// defaultTonnage is assigned when no keyword matches.
const defaultTonnage = 5

// TonnageFor classifies the vehicle-type text into a tonnage class by
// case-insensitive substring match.
func TonnageFor(vehicleType string) int {
	v := strings.ToLower(vehicleType)
	for _, c := range tonnageClasses {
		if strings.Contains(v, c.keyword) {
			return c.tons
		}
	}
	return defaultTonnage
}
