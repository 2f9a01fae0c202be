// Package sources fetches raw listings from each auction site. Every
// source is an isolated failure domain: one of them failing or hanging
// never blocks or fails the others.
package sources

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
)

// ErrAllSourcesFailed aborts the run; with zero successful sources there
// is nothing to snapshot.
var ErrAllSourcesFailed = errors.New("all sources failed")

const userAgent = "Arremate Property Monitor/1.0"

// Source is one auction site. Priority ranks sources for canonical
// representative selection; lower is better, and sources returning
// structured data directly rank above browser-rendered ones.
type Source interface {
	Name() string
	Priority() int
	Fetch(ctx context.Context) ([]*models.Imovel, error)
}

// FetchAll runs every source concurrently and joins them with settled
// semantics: each source either contributes its records or is logged and
// excluded. Only zero successes is an error.
func FetchAll(ctx context.Context, srcs []Source, timeout time.Duration, logger *logrus.Logger) ([]*models.Imovel, error) {
	type result struct {
		name    string
		records []*models.Imovel
		err     error
	}

	results := make(chan result, len(srcs))
	var wg sync.WaitGroup
	for _, src := range srcs {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			records, err := src.Fetch(sctx)
			results <- result{name: src.Name(), records: records, err: err}
		}(src)
	}
	wg.Wait()
	close(results)

	var all []*models.Imovel
	succeeded := 0
	for res := range results {
		if res.err != nil {
			logger.WithError(res.err).WithField("source", res.name).Error("Source failed, excluding from this run")
			continue
		}
		succeeded++
		logger.WithFields(logrus.Fields{
			"source":  res.name,
			"records": len(res.records),
		}).Info("Source fetched")
		all = append(all, res.records...)
	}

	if succeeded == 0 {
		return nil, ErrAllSourcesFailed
	}
	return all, nil
}

// Priorities maps source name to rank for the identity resolver.
func Priorities(srcs []Source) map[string]int {
	m := make(map[string]int, len(srcs))
	for _, s := range srcs {
		m[s.Name()] = s.Priority()
	}
	return m
}

// dropInvalid filters records the pipeline can not use: a zero or
// unparseable price must never reach the core stages.
func dropInvalid(records []*models.Imovel, source string, skipped int, logger *logrus.Logger) []*models.Imovel {
	out := records[:0]
	for _, r := range records {
		if r.Lance <= 0 {
			skipped++
			continue
		}
		out = append(out, r)
	}
	if skipped > 0 && logger != nil {
		logger.WithFields(logrus.Fields{
			"source":  source,
			"skipped": skipped,
		}).Warn("Skipped malformed records")
	}
	return out
}
