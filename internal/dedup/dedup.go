// Package dedup clusters raw records from all sources into one canonical
// record per physical property. The matcher is deliberately conservative:
// a missed merge is reviewable downstream, a wrong merge is not.
package dedup

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
)

// Conservative literals for the match rule. The address threshold and the
// price tolerance were chosen by inspecting cross-source duplicates by
// hand; both err toward not merging.
const (
	AddressSimilarityThreshold = 0.60
	PriceTolerance             = 0.05
)

// Resolver clusters records and picks canonical representatives.
type Resolver struct {
	logger *logrus.Logger
	// sourcePriority ranks sources; lower is better. Structured-data
	// sources rank above browser-rendered ones.
	sourcePriority map[string]int
}

func NewResolver(logger *logrus.Logger, sourcePriority map[string]int) *Resolver {
	return &Resolver{logger: logger, sourcePriority: sourcePriority}
}

// Match reports whether two records denote the same physical property:
// same normalized bairro, similar address token sets, and either prices
// within tolerance or one address containing the other's street number.
// Records with an empty bairro or endereco never match anything.
func Match(a, b *models.Imovel) bool {
	ba := normalize.Text(a.Bairro)
	bb := normalize.Text(b.Bairro)
	if ba == "" || bb == "" || ba != bb {
		return false
	}
	if strings.TrimSpace(a.Endereco) == "" || strings.TrimSpace(b.Endereco) == "" {
		return false
	}

	if jaccard(normalize.AddressTokens(a.Endereco), normalize.AddressTokens(b.Endereco)) < AddressSimilarityThreshold {
		return false
	}

	if priceWithinTolerance(a.Lance, b.Lance) {
		return true
	}
	return streetNumberContained(a.Endereco, b.Endereco)
}

func priceWithinTolerance(a, b float64) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	larger := a
	if b > larger {
		larger = b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff/larger <= PriceTolerance
}

func streetNumberContained(a, b string) bool {
	na := normalize.StreetNumber(a)
	nb := normalize.StreetNumber(b)
	if na != "" && strings.Contains(normalize.Text(b), na) {
		return true
	}
	if nb != "" && strings.Contains(normalize.Text(a), nb) {
		return true
	}
	return false
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// Resolve merges the raw records of all sources into one canonical record
// per physical property. Each source is assumed internally unique, so
// pairs from the same source are never compared.
func (r *Resolver) Resolve(records []*models.Imovel) []*models.Imovel {
	uf := newUnionFind(len(records))

	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			if records[i].Fonte == records[j].Fonte {
				continue
			}
			if Match(records[i], records[j]) {
				uf.union(i, j)
			}
		}
	}

	// Group members by root, keeping first-seen order stable.
	clusters := make(map[int][]int)
	var roots []int
	for i := range records {
		root := uf.find(i)
		if _, ok := clusters[root]; !ok {
			roots = append(roots, root)
		}
		clusters[root] = append(clusters[root], i)
	}

	out := make([]*models.Imovel, 0, len(roots))
	merged := 0
	for _, root := range roots {
		members := make([]*models.Imovel, 0, len(clusters[root]))
		for _, idx := range clusters[root] {
			members = append(members, records[idx])
		}
		if len(members) > 1 {
			merged += len(members) - 1
		}
		out = append(out, r.canonical(members))
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"raw":    len(records),
			"unique": len(out),
			"merged": merged,
		}).Info("Resolved property identities")
	}
	return out
}

// canonical picks a representative and backfills its gaps from the rest
// of the cluster. Preference order: occupancy data present, then area
// data present, then best source priority.
func (r *Resolver) canonical(members []*models.Imovel) *models.Imovel {
	best := 0
	for i := 1; i < len(members); i++ {
		if r.better(members[i], members[best]) {
			best = i
		}
	}

	rep := *members[best]
	rep.Alertas = append([]string(nil), members[best].Alertas...)

	for i, m := range members {
		if i == best {
			continue
		}
		backfill(&rep, m)
	}
	// Alerts are unioned over every member, never dropped.
	for _, m := range members {
		for _, a := range m.Alertas {
			rep.AddAlerta(a)
		}
	}
	if len(members) > 1 {
		rep.AddAlerta(fmt.Sprintf("Anunciado em %d fontes", len(members)))
	}
	return &rep
}

func (r *Resolver) better(a, b *models.Imovel) bool {
	if (a.Ocupacao != "") != (b.Ocupacao != "") {
		return a.Ocupacao != ""
	}
	if (a.Area != "") != (b.Area != "") {
		return a.Area != ""
	}
	return r.priority(a.Fonte) < r.priority(b.Fonte)
}

func (r *Resolver) priority(fonte string) int {
	if p, ok := r.sourcePriority[fonte]; ok {
		return p
	}
	return len(r.sourcePriority) + 1
}

// backfill copies any field the representative is missing from m.
func backfill(rep, m *models.Imovel) {
	if rep.Tipo == "" {
		rep.Tipo = m.Tipo
	}
	if rep.Endereco == "" {
		rep.Endereco = m.Endereco
	}
	if rep.Avaliacao == nil {
		rep.Avaliacao = m.Avaliacao
	}
	if rep.Desconto == nil {
		rep.Desconto = m.Desconto
	}
	if rep.Modalidade == "" {
		rep.Modalidade = m.Modalidade
	}
	if rep.Ocupacao == "" {
		rep.Ocupacao = m.Ocupacao
	}
	if rep.Area == "" {
		rep.Area = m.Area
	}
	if rep.Quartos == nil {
		rep.Quartos = m.Quartos
	}
	if rep.Vagas == nil {
		rep.Vagas = m.Vagas
	}
	if rep.Encerramento == nil {
		rep.Encerramento = m.Encerramento
	}
	if m.SemVagas {
		rep.SemVagas = true
	}
}
