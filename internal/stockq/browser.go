package stockq

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserRenderer loads pages in a headless Chromium, for when the plain HTTP
// response lacks the data table.
type BrowserRenderer struct {
	timeout time.Duration
	settle  time.Duration
}

// NewBrowserRenderer creates a headless browser renderer. After load, the
// page must stay unchanged for settle before its HTML is read; zero skips
// the wait.
func NewBrowserRenderer(timeout, settle time.Duration) *BrowserRenderer {
	return &BrowserRenderer{timeout: timeout, settle: settle}
}

// Timeout bounds one Render call, browser launch included.
func (b *BrowserRenderer) Timeout() time.Duration {
	return b.timeout
}

// Render launches a browser, waits for the page to load and returns its HTML.
func (b *BrowserRenderer) Render(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	l := launcher.New().Headless(true).Context(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", url, err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}
	if b.settle > 0 {
		if err := page.WaitStable(b.settle); err != nil {
			return nil, fmt.Errorf("waiting for %s to settle: %w", url, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading HTML of %s: %w", url, err)
	}
	return []byte(html), nil
}
