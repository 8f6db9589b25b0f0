package models

import "time"

// ScrapeResult is the aggregate returned by one scrape request and the
// response body for GET /scrape. It is assembled once by the session
// controller and never mutated afterwards.
type ScrapeResult struct {
	// Success indicates whether the scrape completed without errors.
	// Zero orders with a clean run is still a success.
	Success bool `json:"success"`

	// Orders holds the normalized freight listings in extraction order.
	Orders []Order `json:"orders"`

	// TotalOrders is len(Orders), duplicated for the caller's convenience.
	TotalOrders int `json:"totalOrders"`

	// ScrapedAt is the capture timestamp for the whole run.
	ScrapedAt time.Time `json:"scrapedAt"`

	// Error carries the failure message when Success is false.
	Error string `json:"error,omitempty"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   string    `json:"version"`
}
