package main

import (
	"context"
	"embed"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/freightstat/internal/config"
	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	app := &cli.App{
		Name:  "freightstat",
		Usage: "refresh freight ETF holdings and shipping index history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output-dir",
				Aliases:     []string{"o"},
				Usage:       "directory for generated CSV files",
				Value:       cfg.OutputDir,
				Destination: &cfg.OutputDir,
			},
			&cli.StringFlag{
				Name:        "database-url",
				Usage:       "PostgreSQL DSN for the index history mirror",
				Value:       cfg.DatabaseURL,
				Destination: &cfg.DatabaseURL,
			},
			&cli.StringFlag{
				Name:        "xlsx",
				Usage:       "also write sorted holdings to this workbook",
				Value:       cfg.XLSXPath,
				Destination: &cfg.XLSXPath,
			},
			&cli.BoolFlag{
				Name:        "browser",
				Usage:       "render pages in headless Chromium",
				Value:       cfg.UseBrowser,
				Destination: &cfg.UseBrowser,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "holdings",
				Usage: "download the issuer feed and write sorted BDRY/BWET holdings",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "fund",
						Usage: "fund to process, repeatable (default: every fund)",
					},
				},
				Action: func(c *cli.Context) error {
					funds, err := parseFunds(c.StringSlice("fund"))
					if err != nil {
						return err
					}
					return runJobs(c.Context, &cfg, funds, jobHoldings)
				},
			},
			{
				Name:  "indices",
				Usage: "scrape freight indices and merge them into history files",
				Action: func(c *cli.Context) error {
					return runJobs(c.Context, &cfg, nil, jobIndices)
				},
			},
			{
				Name:  "quotes",
				Usage: "save the current quote of each fund's underlying index",
				Action: func(c *cli.Context) error {
					return runJobs(c.Context, &cfg, nil, jobQuotes)
				},
			},
			{
				Name:  "all",
				Usage: "run every update once",
				Action: func(c *cli.Context) error {
					return runJobs(c.Context, &cfg, nil, defaultJobs(cfg)...)
				},
			},
			{
				Name:  "watch",
				Usage: "run every update now and then on an interval until interrupted",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:        "interval",
						Value:       cfg.UpdateInterval,
						Destination: &cfg.UpdateInterval,
					},
				},
				Action: func(c *cli.Context) error {
					return watch(c.Context, &cfg)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("freightstat: %v", err)
	}
}

// runJobs wires the named jobs and runs each once. A nil funds list means
// every known fund.
func runJobs(ctx context.Context, cfg *config.Config, funds []domain.FundCode, names ...string) error {
	runner, cleanup, err := buildRunner(ctx, *cfg, funds, names)
	if err != nil {
		return err
	}
	defer cleanup()

	return runner.Update(ctx)
}

func watch(ctx context.Context, cfg *config.Config) error {
	runner, cleanup, err := buildRunner(ctx, *cfg, nil, defaultJobs(*cfg))
	if err != nil {
		return err
	}
	defer cleanup()

	worker.NewUpdateWorker(runner, cfg.UpdateInterval).Run(ctx)
	slog.Info("Shutdown complete")
	return nil
}

// defaultJobs skips the underlying index quotes unless a browser is enabled,
// since those pages only render with JavaScript.
func defaultJobs(cfg config.Config) []string {
	jobs := []string{jobHoldings, jobIndices}
	if cfg.UseBrowser {
		jobs = append(jobs, jobQuotes)
	} else {
		slog.Info("browser disabled, skipping underlying index quotes")
	}
	return jobs
}
