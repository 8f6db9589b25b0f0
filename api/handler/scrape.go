package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ordersnap/models"
)

// OrderScraper runs one full scrape request against the marketplace.
// Implemented by *scraper.Scraper.
type OrderScraper interface {
	DoScrape(ctx context.Context) (*models.ScrapeResult, error)
}

// Scrape returns a handler for GET /scrape.
//
// Any failure inside the scrape — configuration, session acquisition,
// login, navigation, listing — is reported as a single 500 with the
// error message and an empty order list. The core does not retry;
// retry policy belongs to the caller.
func Scrape(sc OrderScraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		result, err := sc.DoScrape(c.Request.Context())
		if err != nil {
			slog.Error("scrape failed",
				"error", err,
				"duration", time.Since(start).Round(time.Millisecond),
			)
			c.JSON(http.StatusInternalServerError, models.ScrapeResult{
				Success:   false,
				Orders:    []models.Order{},
				ScrapedAt: time.Now(),
				Error:     err.Error(),
			})
			return
		}

		slog.Info("scrape completed",
			"orders", result.TotalOrders,
			"duration", time.Since(start).Round(time.Millisecond),
		)
		c.JSON(http.StatusOK, result)
	}
}
