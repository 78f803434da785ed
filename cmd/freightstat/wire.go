package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/mtlprog/freightstat/internal/amplify"
	"github.com/mtlprog/freightstat/internal/config"
	"github.com/mtlprog/freightstat/internal/database"
	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/export"
	"github.com/mtlprog/freightstat/internal/history"
	"github.com/mtlprog/freightstat/internal/holdings"
	"github.com/mtlprog/freightstat/internal/solactive"
	"github.com/mtlprog/freightstat/internal/stockq"
	"github.com/mtlprog/freightstat/internal/update"
)

const (
	jobHoldings = "holdings"
	jobIndices  = "indices"
	jobQuotes   = "quotes"

	// quoteSettle is how long the quote page must stay unchanged after load.
	quoteSettle = 2 * time.Second
)

// buildRunner constructs the requested jobs. cleanup releases the database
// pool when one was opened.
func buildRunner(ctx context.Context, cfg config.Config, funds []domain.FundCode, names []string) (*update.Runner, func(), error) {
	cleanup := func() {}
	var jobs []update.Job

	for _, name := range names {
		switch name {
		case jobHoldings:
			job, err := newHoldingsUpdater(ctx, cfg, funds)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			jobs = append(jobs, job)
		case jobIndices:
			var repo history.Repository
			if cfg.DatabaseURL != "" {
				pool, err := openDatabase(ctx, cfg.DatabaseURL)
				if err != nil {
					cleanup()
					return nil, nil, err
				}
				cleanup = pool.Close
				repo = history.NewPgRepository(pool)
			}
			scraper := stockq.NewScraper(pageRenderer(cfg), cfg.StockQURL)
			jobs = append(jobs, update.NewIndicesUpdater(scraper, cfg.OutputDir, domain.IndexTargets, repo))
		case jobQuotes:
			scraper := solactive.NewScraper(stockq.NewBrowserRenderer(cfg.BrowserTimeout, quoteSettle))
			jobs = append(jobs, update.NewQuotesUpdater(scraper, cfg.OutputDir, solactive.Targets))
		default:
			cleanup()
			return nil, nil, fmt.Errorf("unknown job %q", name)
		}
	}

	return update.NewRunner(jobs...), cleanup, nil
}

func newHoldingsUpdater(ctx context.Context, cfg config.Config, funds []domain.FundCode) (*update.HoldingsUpdater, error) {
	writers := []export.TableWriter{export.NewCSVWriter(cfg.OutputDir)}

	if cfg.XLSXPath != "" {
		writers = append(writers, export.NewXLSXWriter(cfg.XLSXPath))
	}

	if cfg.SheetsEnabled() {
		sheetsWriter, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredentials)
		if err != nil {
			return nil, fmt.Errorf("creating sheets writer: %w", err)
		}
		writers = append(writers, sheetsWriter)
		slog.Info("Google Sheets export enabled", "spreadsheet_id", cfg.SheetsSpreadsheetID)
	} else if cfg.SheetsSpreadsheetID != "" {
		slog.Warn("SHEETS_SPREADSHEET_ID set without GOOGLE_CREDENTIALS_JSON, sheets export disabled")
	}

	client := amplify.NewClient(cfg.FeedURL, cfg.UserAgent, cfg.HTTPTimeout, cfg.FeedRetryDelay, cfg.FeedRetryMax)
	if len(funds) == 0 {
		funds = lo.Map(domain.FundTargets, func(t domain.FundTarget, _ int) domain.FundCode { return t.Code })
	}

	return update.NewHoldingsUpdater(client, holdings.DefaultRulesets(), funds, writers...), nil
}

// parseFunds validates fund codes from the command line, dropping duplicates.
func parseFunds(values []string) ([]domain.FundCode, error) {
	funds := make([]domain.FundCode, 0, len(values))
	for _, v := range values {
		code, err := domain.ParseFundCode(v)
		if err != nil {
			return nil, err
		}
		funds = append(funds, code)
	}
	return lo.Uniq(funds), nil
}

func pageRenderer(cfg config.Config) stockq.Renderer {
	if cfg.UseBrowser {
		return stockq.NewBrowserRenderer(cfg.BrowserTimeout, 0)
	}
	return stockq.NewClient(cfg.UserAgent, cfg.HTTPTimeout, cfg.StockQRetryMax, cfg.StockQRetryDelay)
}

func openDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return pool, nil
}
