package solactive

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrQuoteNotFound is returned when the rendered page has no last quote.
var ErrQuoteNotFound = errors.New("last quote not found")

// Renderer returns the HTML of a page after its scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) ([]byte, error)
}

// Scraper reads quotes through a Renderer.
type Scraper struct {
	renderer Renderer
	now      func() time.Time
}

// NewScraper creates a Scraper.
func NewScraper(renderer Renderer) *Scraper {
	return &Scraper{renderer: renderer, now: time.Now}
}

// Scrape renders the target page and parses its quote.
func (s *Scraper) Scrape(ctx context.Context, target Target) (Quote, error) {
	page, err := s.renderer.Render(ctx, target.URL)
	if err != nil {
		return Quote{}, fmt.Errorf("rendering %s: %w", target.Fund, err)
	}
	q := ParseQuote(target.Fund, string(page), s.now())
	if !q.Found() {
		return q, fmt.Errorf("%s: %w", target.Fund, ErrQuoteNotFound)
	}
	return q, nil
}
