package stockq

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mtlprog/freightstat/internal/domain"
)

// Scraper fetches and decodes index history pages.
type Scraper struct {
	renderer  Renderer
	urlFormat string
}

// NewScraper creates a Scraper. urlFormat must contain one %s for the index code,
// e.g. "https://en.stockq.org/index/%s.php".
func NewScraper(renderer Renderer, urlFormat string) *Scraper {
	return &Scraper{renderer: renderer, urlFormat: urlFormat}
}

// Scrape returns every observation published on the index page.
func (s *Scraper) Scrape(ctx context.Context, code domain.IndexCode) ([]domain.IndexPoint, error) {
	url := fmt.Sprintf(s.urlFormat, code)
	page, err := s.renderer.Render(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", code, err)
	}
	points, err := ParseTables(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", code, err)
	}
	return points, nil
}
