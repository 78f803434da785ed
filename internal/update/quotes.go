package update

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mtlprog/freightstat/internal/solactive"
)

// QuoteScraper reads the current quote of an underlying index.
type QuoteScraper interface {
	Scrape(ctx context.Context, target solactive.Target) (solactive.Quote, error)
}

// QuotesUpdater saves the latest underlying index quote of each fund.
type QuotesUpdater struct {
	scraper QuoteScraper
	dir     string
	targets []solactive.Target
}

// NewQuotesUpdater creates a QuotesUpdater writing into dir.
func NewQuotesUpdater(scraper QuoteScraper, dir string, targets []solactive.Target) *QuotesUpdater {
	return &QuotesUpdater{scraper: scraper, dir: dir, targets: targets}
}

// Run refreshes every quote file. A failing index does not stop the others.
func (u *QuotesUpdater) Run(ctx context.Context) (Report, error) {
	report := Report{Job: "quotes"}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return report, fmt.Errorf("creating output directory: %w", err)
	}

	for _, target := range u.targets {
		err := u.processQuote(ctx, target)
		if err != nil {
			slog.Error("quote update failed", "fund", target.Fund, "error", err)
			report.add(string(target.Fund), 0, err)
			continue
		}
		report.add(string(target.Fund), 1, nil)
	}

	return report, report.Err()
}

func (u *QuotesUpdater) processQuote(ctx context.Context, target solactive.Target) error {
	q, err := u.scraper.Scrape(ctx, target)
	if err != nil {
		return err
	}
	path := filepath.Join(u.dir, target.File)
	if err := solactive.Save(path, q); err != nil {
		return err
	}
	slog.Info("quote updated",
		"fund", target.Fund,
		"date", q.LastDate,
		"last", q.Last.Decimal.String(),
		"file", path,
	)
	return nil
}
