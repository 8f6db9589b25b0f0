package models

import "time"

// Order is one normalized freight listing. Field names are fixed by the
// orchestration caller's contract; vehicleType/truckType and
// price/offeredPrice intentionally duplicate their values, and
// contact/deadline alias the shipper and the raw datetime text.
// Orders are immutable once constructed.
type Order struct {
	ID           string    `json:"id"`
	Shipper      string    `json:"shipper"`
	Date         string    `json:"date"`        // e.g. "10 Januari 2024"
	LoadingTime  string    `json:"loadingTime"` // e.g. "08:00"
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Route        string    `json:"route"`
	VehicleType  string    `json:"vehicleType"`
	TruckType    string    `json:"truckType"`
	Price        int       `json:"price"`
	OfferedPrice int       `json:"offeredPrice"`
	Tonnage      int       `json:"tonnage"`
	Status       string    `json:"status"`
	Contact      string    `json:"contact"`
	Deadline     string    `json:"deadline"`
	CargoType    string    `json:"cargoType"`
	Source       string    `json:"source"`
	ScrapedAt    time.Time `json:"scrapedAt"`
}
