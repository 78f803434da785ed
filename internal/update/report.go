// Package update runs the holdings and index refresh jobs.
package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// Result is the outcome of processing one fund or index.
type Result struct {
	Name string
	Rows int
	Err  error
}

// Report collects per-item results of one run.
type Report struct {
	Job     string
	Results []Result
}

func (r *Report) add(name string, rows int, err error) {
	r.Results = append(r.Results, Result{Name: name, Rows: rows, Err: err})
}

// Failed returns the results that ended in an error.
func (r Report) Failed() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.Err != nil })
}

// Err summarizes failures, or returns nil when every item succeeded.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := lo.Map(failed, func(res Result, _ int) error {
		return fmt.Errorf("%s: %w", res.Name, res.Err)
	})
	return fmt.Errorf("%s: %d of %d failed: %w", r.Job, len(failed), len(r.Results), errors.Join(errs...))
}

// Job is a refresh that reports per-item outcomes.
type Job interface {
	Run(ctx context.Context) (Report, error)
}

// Runner runs jobs in sequence. A failing job does not stop the next one.
type Runner struct {
	jobs []Job
}

// NewRunner creates a Runner over the given jobs.
func NewRunner(jobs ...Job) *Runner {
	return &Runner{jobs: jobs}
}

// Update runs every job and joins their errors.
func (r *Runner) Update(ctx context.Context) error {
	var errs []error
	for _, job := range r.jobs {
		report, err := job.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		slog.Info("update finished",
			"job", report.Job,
			"items", len(report.Results),
			"failed", len(report.Failed()),
		)
	}
	return errors.Join(errs...)
}
