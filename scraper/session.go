package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/ordersnap/config"
	"github.com/use-agent/ordersnap/listing"
	"github.com/use-agent/ordersnap/models"
	"github.com/ysmood/gson"
)

// session is one exclusive, live browsing context. It is owned by a
// single DoScrape invocation for its entire lifetime, never shared or
// reused, and must be closed exactly once.
type session interface {
	// Login drives the page to an authenticated state.
	Login(ctx context.Context) error

	// FetchListing navigates to the listing page, confirms the login
	// held, waits for the order container and returns the rendered HTML.
	FetchListing(ctx context.Context) (string, error)

	// Close releases the browsing context.
	Close()
}

// DoScrape runs one full scrape: acquire a session, authenticate,
// navigate, extract, normalize. On any error the returned result is nil
// and no partially-constructed Orders leak; the session is torn down on
// every exit path.
//
// Lifecycle:
//
//	1. Credentials check  – missing credentials fail here, before any
//	                        browser work
//	2. Acquire session    – fresh page; nothing to tear down on failure
//	3. DEFER: teardown    – close the page exactly once, on every path
//	4. Login              – selector-fallback authentication
//	5. Fetch listing      – navigate + confirm + wait for the table
//	6. Extract/normalize  – raw rows to Orders, drops counted
func (s *Scraper) DoScrape(ctx context.Context) (*models.ScrapeResult, error) {
	creds := s.cfg.Credentials
	if creds.Email == "" || creds.Password == "" {
		return nil, models.NewScrapeError(
			models.ErrCodeConfiguration,
			"marketplace credentials are not configured",
			nil,
		)
	}

	sess, err := s.newSession()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeSession,
			"failed to open a browsing context",
			err,
		)
	}

	return runSession(ctx, sess)
}

// runSession is the state machine from acquired session to assembled
// result. It is separated from DoScrape so the teardown and isolation
// guarantees can be exercised against a fake session.
func runSession(ctx context.Context, sess session) (*models.ScrapeResult, error) {
	defer sess.Close()

	if err := sess.Login(ctx); err != nil {
		return nil, err
	}

	html, err := sess.FetchListing(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := listing.ExtractRows(html)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeInternal,
			"failed to parse rendered listing",
			err,
		)
	}

	now := time.Now()
	orders := make([]models.Order, 0, len(rows))
	drops := make(map[listing.DropReason]int)
	for i, row := range rows {
		order, reason, ok := listing.Normalize(row, i, now)
		if !ok {
			drops[reason]++
			continue
		}
		orders = append(orders, order)
	}

	slog.Info("listing scraped",
		"rows", len(rows),
		"orders", len(orders),
		"dropped", len(rows)-len(orders),
	)
	for reason, count := range drops {
		slog.Debug("rows dropped", "reason", string(reason), "count", count)
	}

	return &models.ScrapeResult{
		Success:     true,
		Orders:      orders,
		TotalOrders: len(orders),
		ScrapedAt:   now,
	}, nil
}

// newSession creates a fresh page, injects the stealth script and sets
// the locale headers. Both must happen before the first navigation.
func (s *Scraper) newSession() (session, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", evalErr,
		)
	}

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept-Language": "id-ID,id;q=0.9,en;q=0.8",
		}),
	}.Call(page)

	return &rodSession{page: page, cfg: s.cfg}, nil
}

// rodSession is the production session implementation over a rod page.
type rodSession struct {
	page *rod.Page
	cfg  config.ScraperConfig
}

func (rs *rodSession) Close() {
	if err := rs.page.Close(); err != nil {
		slog.Warn("failed to close browsing context", "error", err)
	}
}

// navigate drives the page to url and waits for a quiescent network
// state (no more in-flight requests for a short settling interval),
// bounded by timeout.
func (rs *rodSession) navigate(ctx context.Context, url string, timeout time.Duration) error {
	p := rs.page.Context(ctx).Timeout(timeout)

	// The idle listener must be registered before Navigate, otherwise
	// in-flight requests are missed and the wait returns instantly.
	waitIdle := p.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)

	if err := p.Navigate(url); err != nil {
		return err
	}
	waitIdle()

	return p.GetContext().Err()
}

// currentURL reads window.location.href, empty on failure.
func (rs *rodSession) currentURL(ctx context.Context) string {
	res, err := rs.page.Context(ctx).Eval(`() => window.location.href`)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
