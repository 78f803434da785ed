package update

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/freightstat/internal/amplify"
	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/export"
	"github.com/mtlprog/freightstat/internal/holdings"
)

// FeedFetcher downloads the issuer's master holdings CSV.
type FeedFetcher interface {
	FetchFeed(ctx context.Context) ([]byte, error)
}

// HoldingsUpdater extracts, sorts and publishes fund holdings.
type HoldingsUpdater struct {
	fetcher  FeedFetcher
	rulesets map[domain.FundCode]holdings.Ruleset
	funds    []domain.FundCode
	writers  []export.TableWriter
}

// NewHoldingsUpdater creates a HoldingsUpdater. Every sorted table is passed
// to each writer in order.
func NewHoldingsUpdater(
	fetcher FeedFetcher,
	rulesets map[domain.FundCode]holdings.Ruleset,
	funds []domain.FundCode,
	writers ...export.TableWriter,
) *HoldingsUpdater {
	return &HoldingsUpdater{
		fetcher:  fetcher,
		rulesets: rulesets,
		funds:    funds,
		writers:  writers,
	}
}

// Run downloads the feed once and processes each fund independently.
func (u *HoldingsUpdater) Run(ctx context.Context) (Report, error) {
	report := Report{Job: "holdings"}

	data, err := u.fetcher.FetchFeed(ctx)
	if err != nil {
		return report, fmt.Errorf("fetching holdings feed: %w", err)
	}
	feed, err := amplify.ParseFeed(bytes.NewReader(data))
	if err != nil {
		return report, fmt.Errorf("parsing holdings feed: %w", err)
	}
	slog.Info("holdings feed loaded", "rows", feed.Len())

	for _, fund := range u.funds {
		rows, err := u.processFund(ctx, feed, fund)
		if err != nil {
			slog.Error("fund update failed", "fund", fund, "error", err)
		}
		report.add(string(fund), rows, err)
	}

	return report, report.Err()
}

func (u *HoldingsUpdater) processFund(ctx context.Context, feed *amplify.Feed, fund domain.FundCode) (int, error) {
	rs, ok := u.rulesets[fund]
	if !ok {
		return 0, fmt.Errorf("no ruleset for fund %s", fund)
	}

	table, err := feed.Holdings(fund)
	if err != nil {
		return 0, err
	}
	sorted, err := holdings.Sort(table, rs)
	if err != nil {
		return 0, fmt.Errorf("sorting: %w", err)
	}

	// Writers run in order and are not rolled back: when one fails, the
	// destinations before it already hold the new table.
	for i, w := range u.writers {
		if err := w.Write(ctx, fund, sorted); err != nil {
			return 0, fmt.Errorf("writing to %T (%d of %d written): %w", w, i, len(u.writers), err)
		}
		slog.Info("holdings written", "fund", fund, "writer", fmt.Sprintf("%T", w))
	}

	summary, err := holdings.Summarize(sorted.Rows, rs)
	if err != nil {
		return 0, fmt.Errorf("summarizing: %w", err)
	}
	for _, s := range summary {
		slog.Info("category summary",
			"fund", fund,
			"category", s.Category.Label,
			"holdings", s.Count,
			"value", s.Value.StringFixed(2),
			"percent", s.Percent.StringFixed(2),
		)
	}
	slog.Info("fund updated", "fund", fund, "holdings", sorted.Len())

	return sorted.Len(), nil
}
