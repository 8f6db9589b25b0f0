package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/ordersnap/models"
)

// probe is one selector strategy in a fallback chain. Chains are plain
// tables so new site-markup variants are additive entries, not new
// branches.
type probe struct {
	name string
	find func(p *rod.Page) (*rod.Element, error)
}

func bySelector(sel string) probe {
	return probe{
		name: sel,
		find: func(p *rod.Page) (*rod.Element, error) { return p.Element(sel) },
	}
}

func byText(sel, re string) probe {
	return probe{
		name: sel + " matching " + re,
		find: func(p *rod.Page) (*rod.Element, error) { return p.ElementR(sel, re) },
	}
}

var (
	identifierProbes = []probe{
		bySelector(`input[type="email"]`),
		bySelector(`input[name="email"]`),
		bySelector(`input[name="username"]`),
	}

	passwordProbes = []probe{
		bySelector(`input[type="password"]`),
		bySelector(`input[name="password"]`),
	}

	// Explicit submit-typed controls first, then anything clickable whose
	// visible text is a known affirmative label.
	submitProbes = []probe{
		bySelector(`button[type="submit"]`),
		bySelector(`input[type="submit"]`),
		byText(`button, a, [role="button"]`, `/^\s*(login|log ?in|masuk|sign ?in)\s*$/i`),
	}
)

// findFirst walks the probe chain in priority order, giving each probe
// an equal share of the overall bound. The first probe that resolves to
// a visible element wins.
func findFirst(page *rod.Page, timeout time.Duration, probes []probe) (*rod.Element, error) {
	share := timeout / time.Duration(len(probes))
	for _, pr := range probes {
		el, err := pr.find(page.Timeout(share))
		if err != nil {
			continue
		}
		if visible, _ := el.Visible(); !visible {
			continue
		}
		// Drop the probe's short deadline so later interaction with the
		// element is bounded by the caller, not by the probe share.
		return el.CancelTimeout(), nil
	}
	return nil, fmt.Errorf("no element matched any of %d strategies within %s", len(probes), timeout)
}

// Login navigates to the login page, fills the credential form via the
// fallback chains and submits it.
//
// The post-submit wait is advisory only: some sites complete login with
// an in-page transition and never fire a navigation, so exhausting it is
// logged, not failed. Authentication is confirmed by FetchListing, which
// checks that the listing navigation did not bounce back to the login
// page. Logins routed entirely client-side can still slip past that
// check; this is a known reliability gap.
func (rs *rodSession) Login(ctx context.Context) error {
	cfg := rs.cfg

	if err := rs.navigate(ctx, cfg.LoginURL, cfg.NavTimeout); err != nil {
		return models.NewScrapeError(
			models.ErrCodeNavTimeout,
			"login page did not reach a quiescent state",
			err,
		)
	}

	page := rs.page.Context(ctx)

	identifier, err := findFirst(page, cfg.SelectorTimeout, identifierProbes)
	if err != nil {
		return models.NewScrapeError(
			models.ErrCodeLoginForm,
			"identifier input not found",
			err,
		)
	}
	if err := identifier.Input(cfg.Credentials.Email); err != nil {
		return models.NewScrapeError(
			models.ErrCodeLoginForm,
			"failed to type identifier",
			err,
		)
	}

	password, err := findFirst(page, cfg.SelectorTimeout, passwordProbes)
	if err != nil {
		return models.NewScrapeError(
			models.ErrCodeLoginForm,
			"password input not found",
			err,
		)
	}
	if err := password.Input(cfg.Credentials.Password); err != nil {
		return models.NewScrapeError(
			models.ErrCodeLoginForm,
			"failed to type password",
			err,
		)
	}

	submit, err := findFirst(page, cfg.SelectorTimeout, submitProbes)
	if err != nil {
		return models.NewScrapeError(
			models.ErrCodeLoginForm,
			"submit control not found",
			err,
		)
	}

	// Register the idle listener before clicking so the post-submit
	// requests are captured.
	p := page.Timeout(cfg.PostSubmitWait)
	waitIdle := p.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)

	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return models.NewScrapeError(
			models.ErrCodeLoginForm,
			"failed to click submit control",
			err,
		)
	}

	waitIdle()
	if waitErr := p.GetContext().Err(); waitErr != nil {
		slog.Warn("post-submit wait exhausted, verifying login on next navigation",
			"wait", cfg.PostSubmitWait,
			"error", waitErr,
		)
	}

	return nil
}
