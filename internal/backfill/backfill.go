// Package backfill implements the one-shot slug migration for listings
// created before slugs existed. The job walks the full listing set in id
// order, derives each slug from the record's current city, category and
// business name, and persists it. Derivation is a pure function of those
// fields, so re-running the job is idempotent; a cursor allows an aborted
// run to resume where it stopped.
package backfill

import (
	"context"
	"fmt"
	"log"

	"github.com/bizdir/business-listing-api/internal/model"
	"github.com/bizdir/business-listing-api/internal/slug"
)

// ListingSource is the slice of the listing store the job needs: a
// resumable ordered scan and a slug-only write.
type ListingSource interface {
	ListAfter(ctx context.Context, afterID string, limit int) ([]*model.Listing, error)
	UpdateSlug(ctx context.Context, id, slug string) error
}

// RecordError describes one listing the job could not migrate. Per-record
// failures never abort the run; they are collected and reported.
type RecordError struct {
	ListingID    string
	BusinessName string
	Reason       string
}

// Report summarizes a completed run. LastID is the cursor of the final
// record seen and can be fed back via -resume-after after an abort.
type Report struct {
	Processed int
	Updated   int
	Failed    int
	LastID    string
	Errors    []RecordError
}

// Runner executes the migration. DryRun derives and logs slugs without
// persisting anything. BatchSize bounds each page of the scan.
type Runner struct {
	Source    ListingSource
	BatchSize int
	DryRun    bool
	Logger    *log.Logger
}

// Run walks all listings after resumeAfter and backfills their slugs.
// Only a failure to read a page is fatal; everything else is a per-record
// error that is logged, counted and skipped.
func (r *Runner) Run(ctx context.Context, resumeAfter string) (Report, error) {
	batch := r.BatchSize
	if batch <= 0 {
		batch = 100
	}
	rep := Report{LastID: resumeAfter}

	for {
		page, err := r.Source.ListAfter(ctx, rep.LastID, batch)
		if err != nil {
			return rep, fmt.Errorf("load listings after %q: %w", rep.LastID, err)
		}
		if len(page) == 0 {
			return rep, nil
		}
		for _, l := range page {
			rep.LastID = l.ID
			rep.Processed++
			if err := r.migrate(ctx, l); err != nil {
				rep.Failed++
				rep.Errors = append(rep.Errors, RecordError{
					ListingID:    l.ID,
					BusinessName: l.BusinessName,
					Reason:       err.Error(),
				})
				r.logf("error id=%s business=%q: %v", l.ID, l.BusinessName, err)
				continue
			}
			rep.Updated++
		}
	}
}

func (r *Runner) migrate(ctx context.Context, l *model.Listing) error {
	// A slug derived from blank source fields would be unaddressable;
	// treat the record as malformed rather than writing "//".
	switch {
	case l.City == "":
		return fmt.Errorf("missing city")
	case l.Category == "":
		return fmt.Errorf("missing category")
	case l.BusinessName == "":
		return fmt.Errorf("missing business name")
	}
	s := slug.ForListing(l.City, l.Category, l.BusinessName)
	if r.DryRun {
		r.logf("dry-run id=%s %q -> %s", l.ID, l.BusinessName, s)
		return nil
	}
	if err := r.Source.UpdateSlug(ctx, l.ID, s); err != nil {
		return fmt.Errorf("save slug: %w", err)
	}
	r.logf("updated id=%s %q -> %s", l.ID, l.BusinessName, s)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}
