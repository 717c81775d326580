// Package main provides the CSV catalog loader. It ingests the
// courses/professors/sections/reviews CSV files from the configured data
// directory and rebuilds the search index afterwards.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/geasyapp/geasy-server/internal/config"
	"github.com/geasyapp/geasy-server/internal/di"
	"github.com/geasyapp/geasy-server/internal/di/providers"
	"github.com/geasyapp/geasy-server/internal/logger"
	"github.com/geasyapp/geasy-server/internal/service"
)

func main() {
	injector := di.NewContainer()
	defer func() {
		if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
			_ = storeHandle.Shutdown()
		}
		if searchHandle, err := do.Invoke[*providers.SearchIndexHandle](injector); err == nil {
			_ = searchHandle.Shutdown()
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := do.MustInvoke[*logger.Logger](injector)

	ingest := do.MustInvoke[*service.IngestService](injector)

	ctx := context.Background()
	summary, err := ingest.Run(ctx, cfg.Data.CSVPath)
	if err != nil {
		log.Error("Ingest failed", "error", err, "dir", cfg.Data.CSVPath)
		os.Exit(1)
	}

	log.Info("Ingest complete",
		"courses", summary.Courses,
		"professors", summary.Professors,
		"sections", summary.Sections,
		"reviews", summary.Reviews,
		"skipped", summary.Skipped,
	)

	searchService := do.MustInvoke[*service.SearchService](injector)
	if err := searchService.ReindexAll(ctx); err != nil {
		log.Error("Reindex after ingest failed", "error", err)
		os.Exit(1)
	}

	count, _ := searchService.DocumentCount()
	log.Info("Search index rebuilt", "documents", count)
}
