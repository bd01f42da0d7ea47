package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"teamgraph/internal/storage"
	"teamgraph/internal/util"
	"teamgraph/pkg/eventlog"
	"teamgraph/pkg/logger"
	"teamgraph/pkg/logger/console"

	"golang.org/x/sync/errgroup"
)

// check loads every dataset of the catalog and reports the ones that fail
// to read. It exits non-zero when any dataset is broken.
func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		Format: util.GetEnvString("LOG_FORMAT", "text"),
	})
	logger.Init(consoleLogger)

	src, err := storage.Open(ctx, storage.ConfigFromEnv())
	if err != nil {
		logger.Fatal("Failed to open data source", "err", err)
	}
	catalog, err := eventlog.LoadCatalog(util.GetEnv("DATASET_CATALOG"))
	if err != nil {
		logger.Fatal("Failed to load dataset catalog", "err", err)
	}
	if util.GetEnvBool("DATASET_DISCOVERY", false) {
		ids, err := src.Datasets(ctx)
		if err != nil {
			logger.Fatal("Failed to discover datasets", "err", err)
		}
		catalog = catalog.Merge(ids...)
	}

	reader := eventlog.NewReader(src.Loader)
	var failed atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, util.GetEnvInt("CHECK_PARALLEL", 4)))
	for _, entry := range catalog.Datasets {
		g.Go(func() error {
			ds, err := reader.Read(gctx, entry.ID)
			if err != nil {
				failed.Add(1)
				logger.Error("[Check] Dataset failed", "dataset", entry.ID, "err", err)
				return nil
			}
			logger.Info("[Check] Dataset ok",
				"dataset", entry.ID,
				"events", len(ds.Events),
				"teams", len(ds.ConcreteTeams()),
				"meetings", len(ds.Meetings)-1,
				"behaviours", len(ds.Behaviours),
				"participants", len(ds.Participants),
			)
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		logger.Error("[Check] Broken datasets", "count", n, "total", len(catalog.Datasets))
		os.Exit(1)
	}
}
