package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"arremate/server/config"
	"arremate/server/internal/api"
	"arremate/server/internal/pipeline"
	"arremate/server/internal/report"
	"arremate/server/internal/scheduler"
	"arremate/server/internal/snapshot"
	"arremate/server/internal/sources"
	"arremate/server/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	table, err := config.LoadPriceTable(cfg.Pipeline.PriceTablePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load price table")
	}
	logger.Infof("Price table loaded with %d neighborhoods", len(table.Bairros))

	store, err := snapshot.NewStore(cfg.Pipeline.DataDir, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize snapshot store")
	}

	srcs := []sources.Source{
		sources.NewCaixa(cfg.Sources.CaixaURL, logger),
		sources.NewMegaLeiloes(cfg.Sources.MegaURL, logger),
		sources.NewZuk(
			cfg.Sources.ZukURL,
			time.Duration(cfg.Sources.DetailDelay)*time.Millisecond,
			cfg.Sources.MaxDetailFetches,
			logger,
		),
	}

	runner := pipeline.NewRunner(cfg, srcs, table, store, logger)
	notifier := telegram.NewService(cfg, logger)
	catalog := api.NewCatalog()

	reporter, err := report.NewGenerator(cfg.Pipeline.ReportPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize report generator")
	}

	// Serve whatever the archive already has while the first run fetches.
	if previous, err := store.LoadLatestBefore(time.Now().AddDate(0, 0, 1)); err == nil && len(previous) > 0 {
		catalog.Replace(previous)
		logger.Infof("Loaded %d records from the latest snapshot", len(previous))
	}

	run := func(ctx context.Context) error {
		records, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		catalog.Replace(records)
		if err := reporter.Generate(records); err != nil {
			logger.WithError(err).Error("Failed to generate report")
		}
		notifier.NotifyTopDeals(records)
		return nil
	}

	sched := scheduler.NewScheduler(run, cfg.Pipeline.RunHour, logger)
	sched.Start()
	defer sched.Stop()

	router := gin.Default()
	api.SetupRoutes(router, catalog, logger)

	logger.Infof("Starting server on port %s", cfg.API.Port)
	if err := router.Run(":" + cfg.API.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
