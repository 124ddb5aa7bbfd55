// Command slugbackfill derives and stores slugs for listings that predate
// slug support. Safe to re-run; see -dry-run and -resume-after.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bizdir/business-listing-api/internal/backfill"
	"github.com/bizdir/business-listing-api/internal/config"
	"github.com/bizdir/business-listing-api/internal/database"
	"github.com/bizdir/business-listing-api/internal/repository"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "derive and log slugs without writing")
	resumeAfter := flag.String("resume-after", "", "listing id to resume the scan after")
	batchSize := flag.Int("batch-size", 100, "listings fetched per page")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	runner := &backfill.Runner{
		Source:    repository.NewListingRepo(db),
		BatchSize: *batchSize,
		DryRun:    *dryRun,
		Logger:    log.New(os.Stderr, "slugbackfill: ", log.LstdFlags),
	}

	rep, err := runner.Run(context.Background(), *resumeAfter)
	if err != nil {
		// Interrupted mid-scan; print the cursor so the run can resume.
		log.Printf("aborted after %d records (last id %q): %v", rep.Processed, rep.LastID, err)
		os.Exit(1)
	}

	fmt.Printf("processed %d, updated %d, failed %d\n", rep.Processed, rep.Updated, rep.Failed)
	for _, re := range rep.Errors {
		fmt.Printf("  %s (%s): %s\n", re.ListingID, re.BusinessName, re.Reason)
	}
	if rep.LastID != "" {
		fmt.Printf("last id: %s\n", rep.LastID)
	}
	if *dryRun {
		fmt.Println("dry run, nothing written")
	}
}
