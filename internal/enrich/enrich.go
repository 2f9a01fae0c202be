// Package enrich computes price-per-m² and the market-adjusted discount
// against the neighborhood price table.
package enrich

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"arremate/server/config"
	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
)

// MinArea guards the division: areas at or below this are scraping
// garbage ("1m²" placeholders, lot fractions) and produce no enrichment.
const MinArea = 10.0

const (
	AlertaAcimaMercado   = "Preço acima do mercado"
	AlertaProximoMercado = "Preço próximo ao valor de mercado"
)

// Enricher holds the read-only price table. Build one at startup and
// share it; it never mutates.
type Enricher struct {
	table      *config.PriceTable
	logger     *logrus.Logger
	priority   map[string]bool
	normalized []string // table entry names, normalized once, same order as table.Bairros
}

func NewEnricher(table *config.PriceTable, logger *logrus.Logger) *Enricher {
	e := &Enricher{
		table:      table,
		logger:     logger,
		priority:   make(map[string]bool, len(config.PriorityBairros)),
		normalized: make([]string, len(table.Bairros)),
	}
	for i, b := range table.Bairros {
		e.normalized[i] = normalize.Text(b.Nome)
	}
	for _, b := range config.PriorityBairros {
		e.priority[normalize.Text(b)] = true
	}
	return e
}

// Enrich fills the derived market fields of every record in place.
// Missing area or a neighborhood absent from the table leaves the fields
// unset; enrichment degrades, it never fabricates.
func (e *Enricher) Enrich(records []*models.Imovel) {
	enriched := 0
	for _, rec := range records {
		if e.enrichOne(rec) {
			enriched++
		}
	}
	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"total":    len(records),
			"enriched": enriched,
		}).Info("Market enrichment done")
	}
}

func (e *Enricher) enrichOne(rec *models.Imovel) bool {
	rec.Prioridade = e.priority[normalize.Text(rec.Bairro)]

	area := normalize.Area(rec.Area)
	if area <= MinArea {
		return false
	}

	media, ok := e.baseline(rec.Bairro)
	if !ok {
		return false
	}

	precoM2 := math.Round(rec.Lance / area)
	adjusted := media * e.table.Haircut * e.typeFactor(rec.Tipo)
	descontoReal := math.Round((1 - precoM2/adjusted) * 100)

	rec.PrecoM2 = &precoM2
	rec.MediaM2Bairro = &media
	rec.DescontoReal = &descontoReal

	switch {
	case descontoReal < -20:
		rec.AddAlerta(AlertaAcimaMercado)
	case descontoReal < 0:
		rec.AddAlerta(AlertaProximoMercado)
	}
	return true
}

// baseline finds the table entry for a neighborhood: exact normalized
// match first, then substring containment either way, in table order.
func (e *Enricher) baseline(bairro string) (float64, bool) {
	name := normalize.Text(bairro)
	if name == "" {
		return 0, false
	}
	for i, n := range e.normalized {
		if n == name {
			return e.table.Bairros[i].MediaM2, true
		}
	}
	for i, n := range e.normalized {
		if contains(n, name) || contains(name, n) {
			return e.table.Bairros[i].MediaM2, true
		}
	}
	return 0, false
}

func contains(haystack, needle string) bool {
	return needle != "" && haystack != "" && strings.Contains(haystack, needle)
}

func (e *Enricher) typeFactor(tipo string) float64 {
	if f, ok := e.table.FatoresTipo[normalize.Text(tipo)]; ok {
		return f
	}
	return 1.0
}
