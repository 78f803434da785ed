package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/history"
)

// ErrNoPoints is returned when a scraped page contains no observations.
var ErrNoPoints = errors.New("no data points found")

// IndexScraper returns the observations currently published for an index.
type IndexScraper interface {
	Scrape(ctx context.Context, code domain.IndexCode) ([]domain.IndexPoint, error)
}

// IndicesUpdater merges freshly scraped index points into history files.
type IndicesUpdater struct {
	scraper IndexScraper
	dir     string
	targets []domain.IndexTarget
	repo    history.Repository // optional
}

// NewIndicesUpdater creates an IndicesUpdater writing into dir.
// repo may be nil when no database is configured.
func NewIndicesUpdater(scraper IndexScraper, dir string, targets []domain.IndexTarget, repo history.Repository) *IndicesUpdater {
	return &IndicesUpdater{
		scraper: scraper,
		dir:     dir,
		targets: targets,
		repo:    repo,
	}
}

// Run refreshes every index. A failing index does not stop the others.
func (u *IndicesUpdater) Run(ctx context.Context) (Report, error) {
	report := Report{Job: "indices"}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return report, fmt.Errorf("creating output directory: %w", err)
	}

	for _, target := range u.targets {
		if err := ctx.Err(); err != nil {
			report.add(string(target.Code), 0, err)
			continue
		}
		n, err := u.processIndex(ctx, target)
		if err != nil {
			slog.Error("index update failed", "index", target.Code, "error", err)
		}
		report.add(string(target.Code), n, err)
	}

	return report, report.Err()
}

func (u *IndicesUpdater) processIndex(ctx context.Context, target domain.IndexTarget) (int, error) {
	fresh, err := u.scraper.Scrape(ctx, target.Code)
	if err != nil {
		return 0, err
	}
	if len(fresh) == 0 {
		return 0, ErrNoPoints
	}

	path := filepath.Join(u.dir, target.File)
	existing, err := history.Load(path)
	if err != nil {
		return 0, err
	}
	merged := history.Merge(existing, fresh)
	if err := history.Save(path, merged); err != nil {
		return 0, err
	}

	if u.repo != nil {
		if err := u.mirror(ctx, target.Code, fresh); err != nil {
			return 0, fmt.Errorf("mirroring to database: %w", err)
		}
	}

	slog.Info("index updated",
		"index", target.Code,
		"scraped", len(fresh),
		"total", len(merged),
		"file", path,
	)
	return len(merged), nil
}

// mirror upserts the scraped points from the latest stored day onwards.
// Older points are already stored and the page only revises recent days.
func (u *IndicesUpdater) mirror(ctx context.Context, code domain.IndexCode, fresh []domain.IndexPoint) error {
	latest, err := u.repo.Latest(ctx, code)
	switch {
	case errors.Is(err, history.ErrNotFound):
	case err != nil:
		return err
	default:
		fresh = lo.Filter(fresh, func(p domain.IndexPoint, _ int) bool {
			return !p.Date.Before(latest.Date)
		})
	}
	if len(fresh) == 0 {
		return nil
	}
	return u.repo.SavePoints(ctx, code, fresh)
}
