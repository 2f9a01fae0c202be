// Package pipeline runs one daily batch end to end: fetch, resolve,
// diff, correct, enrich, score, persist, notify.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/config"
	"arremate/server/internal/dedup"
	"arremate/server/internal/enrich"
	"arremate/server/internal/models"
	"arremate/server/internal/novelty"
	"arremate/server/internal/override"
	"arremate/server/internal/scoring"
	"arremate/server/internal/snapshot"
	"arremate/server/internal/sources"
)

// Runner wires the pipeline stages together. Sources fan out
// concurrently; everything after the join is a single-threaded pass over
// the in-memory record set.
type Runner struct {
	cfg      *config.Config
	sources  []sources.Source
	resolver *dedup.Resolver
	enricher *enrich.Enricher
	scorer   *scoring.Scorer
	store    *snapshot.Store
	logger   *logrus.Logger
	now      func() time.Time
}

func NewRunner(cfg *config.Config, srcs []sources.Source, table *config.PriceTable, store *snapshot.Store, logger *logrus.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		sources:  srcs,
		resolver: dedup.NewResolver(logger, sources.Priorities(srcs)),
		enricher: enrich.NewEnricher(table, logger),
		scorer:   scoring.NewScorer(),
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one batch. It returns the ranked catalog; the snapshot is
// written before the function returns, so the result is already durable
// when downstream consumers (report, notifier) see it.
func (r *Runner) Run(ctx context.Context) ([]*models.Imovel, error) {
	started := r.now()
	today := started

	raw, err := sources.FetchAll(ctx, r.sources, time.Duration(r.cfg.Sources.FetchTimeout)*time.Second, r.logger)
	if err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}

	resolved := r.resolver.Resolve(raw)

	yesterday, err := r.store.LoadLatestBefore(today)
	if err != nil {
		// A broken old snapshot should not kill today's run; treat
		// everything as new and say so.
		r.logger.WithError(err).Warn("Could not load previous snapshot, marking all records as new")
		yesterday = nil
	}
	novelty.Mark(resolved, yesterday)

	override.Apply(resolved, override.Load(r.cfg.Pipeline.OverridePath, r.logger))

	r.enricher.Enrich(resolved)
	r.scorer.Score(resolved)

	sort.SliceStable(resolved, func(i, j int) bool {
		return scoreOf(resolved[i]) > scoreOf(resolved[j])
	})

	if existing, err := r.store.LoadDay(today); err == nil && existing != nil {
		// The archive is immutable: a re-run on the same day keeps the
		// snapshot already written.
		r.logger.WithField("records", len(existing)).Warn("Snapshot for today already exists, not overwriting")
	} else if err := r.store.Save(today, resolved); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"raw":      len(raw),
		"resolved": len(resolved),
		"novos":    countNew(resolved),
		"elapsed":  time.Since(started).Round(time.Millisecond).String(),
	}).Info("Pipeline run complete")
	return resolved, nil
}

func scoreOf(rec *models.Imovel) float64 {
	if rec.Score == nil {
		return 0
	}
	return *rec.Score
}

func countNew(records []*models.Imovel) int {
	n := 0
	for _, rec := range records {
		if rec.Novo {
			n++
		}
	}
	return n
}

// Stats summarizes a catalog for the API layer.
func Stats(records []*models.Imovel) models.CatalogStats {
	stats := models.CatalogStats{Total: len(records)}
	if len(records) == 0 {
		return stats
	}

	var scoreSum, lanceSum float64
	counts := make(map[string]int)
	for _, rec := range records {
		scoreSum += scoreOf(rec)
		lanceSum += rec.Lance
		if rec.Novo {
			stats.Novos++
		}
		if rec.Bairro != "" {
			counts[rec.Bairro]++
		}
	}
	stats.AverageScore = scoreSum / float64(len(records))
	stats.AverageLance = lanceSum / float64(len(records))

	for bairro, count := range counts {
		stats.TopBairros = append(stats.TopBairros, models.BairroCount{Bairro: bairro, Count: count})
	}
	sort.Slice(stats.TopBairros, func(i, j int) bool {
		if stats.TopBairros[i].Count != stats.TopBairros[j].Count {
			return stats.TopBairros[i].Count > stats.TopBairros[j].Count
		}
		return stats.TopBairros[i].Bairro < stats.TopBairros[j].Bairro
	})
	if len(stats.TopBairros) > 10 {
		stats.TopBairros = stats.TopBairros[:10]
	}
	return stats
}
