// Package novelty annotates today's resolved catalog against yesterday's.
package novelty

import (
	"arremate/server/internal/dedup"
	"arremate/server/internal/models"
)

// Mark sets Novo on every record of today. A record is new when no record
// in yesterday shares its id and, since ids are only stable while the
// upstream listing id is, no yesterday record matches it under the
// resolver's own similarity rule either. Neither input list is mutated
// beyond the Novo flag on today's records.
func Mark(today, yesterday []*models.Imovel) {
	byID := make(map[string]*models.Imovel, len(yesterday))
	for _, y := range yesterday {
		byID[y.ID] = y
	}

	for _, t := range today {
		if _, ok := byID[t.ID]; ok {
			t.Novo = false
			continue
		}
		t.Novo = !matchesAny(t, yesterday)
	}
}

func matchesAny(rec *models.Imovel, prev []*models.Imovel) bool {
	for _, y := range prev {
		if dedup.Match(rec, y) {
			return true
		}
	}
	return false
}
