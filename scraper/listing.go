package scraper

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/ordersnap/models"
)

// FetchListing navigates to the listing page, confirms the session is
// still authenticated, waits for one of the order-container variants to
// appear and returns the rendered HTML.
func (rs *rodSession) FetchListing(ctx context.Context) (string, error) {
	cfg := rs.cfg

	if err := rs.navigate(ctx, cfg.ListingURL, cfg.NavTimeout); err != nil {
		return "", models.NewScrapeError(
			models.ErrCodeNavTimeout,
			"listing page did not reach a quiescent state",
			err,
		)
	}

	// A bounce back to the login page means the login never held.
	if cur := rs.currentURL(ctx); cur != "" && strings.HasPrefix(cur, cfg.LoginURL) {
		return "", models.NewScrapeError(
			models.ErrCodeLoginTimeout,
			"redirected back to login page, authentication not confirmed",
			nil,
		)
	}

	// The listing shows up either as a plain table or as a card layout
	// tagged with an "order"-like class token; accept whichever appears
	// first.
	p := rs.page.Context(ctx).Timeout(cfg.ListingTimeout)
	if _, err := p.Race().Element("table").Element(`[class*="order"]`).Do(); err != nil {
		return "", models.NewScrapeError(
			models.ErrCodeListing,
			"no order table or order container appeared",
			err,
		)
	}

	rs.activateAllOrdersTab(ctx)

	html, err := rs.page.Context(ctx).HTML()
	if err != nil {
		return "", models.NewScrapeError(
			models.ErrCodeInternal,
			"failed to read rendered listing",
			err,
		)
	}
	return html, nil
}

// activateAllOrdersTab clicks the tab that widens the listing to the
// full order set. Best effort: the tab is absent on some layouts and
// its absence is a no-op.
func (rs *rodSession) activateAllOrdersTab(ctx context.Context) {
	p := rs.page.Context(ctx).Timeout(3 * time.Second)

	tab, err := p.ElementR(`a, button, [role="tab"]`, `/^\s*(semua|semua muatan|all orders?)\s*$/i`)
	if err != nil {
		return
	}
	if err := tab.Click(proto.InputMouseButtonLeft, 1); err != nil {
		slog.Debug("all-orders tab click failed, keeping default view", "error", err)
		return
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("listing did not settle after tab switch", "error", err)
	}
}
