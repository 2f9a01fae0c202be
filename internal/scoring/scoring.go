// Package scoring turns an enriched record into a 0-100 deal score with
// a per-factor breakdown, so every score is auditable.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
)

// Factor weights. They sum to 100.
const (
	maxDesconto     = 25.0
	maxDescontoReal = 25.0
	maxVagas        = 15.0
	maxBairro       = 10.0
	maxOcupacao     = 10.0
	maxPrazo        = 15.0
)

// Saturation points and fallback credits.
const (
	descontoSaturation     = 70.0 // nominal discount % at which the factor maxes out
	descontoRealSaturation = 50.0 // real discount % at which the factor maxes out
	descontoRealUnknown    = 12.0 // neutral mid-credit when market data is missing
	prazoAberto            = 8.0  // fixed mid-credit for open-ended sales
)

// Scorer computes deal scores. The clock is injected because the auction
// urgency factor is the one time-dependent input: re-scoring the same
// record on a later day legitimately shifts as the close date nears.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// NewScorerAt pins the clock, for deterministic scoring in tests and
// re-audits of past snapshots.
func NewScorerAt(now func() time.Time) *Scorer {
	return &Scorer{now: now}
}

type factor struct {
	label   string
	points  float64
	max     float64
	unknown bool
}

// Score fills Score and ScoreBreakdown on every record in place.
func (s *Scorer) Score(records []*models.Imovel) {
	for _, rec := range records {
		score, breakdown := s.scoreOne(rec)
		rec.Score = &score
		rec.ScoreBreakdown = breakdown
	}
}

func (s *Scorer) scoreOne(rec *models.Imovel) (float64, string) {
	factors := []factor{
		scoreDesconto(rec),
		scoreDescontoReal(rec),
		scoreVagas(rec),
		scoreBairro(rec),
		scoreOcupacao(rec),
		s.scorePrazo(rec),
	}

	total := 0.0
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		total += f.points
		part := fmt.Sprintf("%s %.0f/%.0f", f.label, f.points, f.max)
		if f.unknown {
			part += " (sem dados)"
		}
		parts = append(parts, part)
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return total, strings.Join(parts, " | ")
}

func scoreDesconto(rec *models.Imovel) factor {
	f := factor{label: "desconto", max: maxDesconto}
	if rec.Desconto == nil {
		f.unknown = true
		return f
	}
	d := *rec.Desconto
	if d < 0 {
		d = 0
	}
	if d > descontoSaturation {
		d = descontoSaturation
	}
	f.points = d / descontoSaturation * maxDesconto
	return f
}

func scoreDescontoReal(rec *models.Imovel) factor {
	f := factor{label: "mercado", max: maxDescontoReal}
	if rec.DescontoReal == nil {
		f.points = descontoRealUnknown
		f.unknown = true
		return f
	}
	d := *rec.DescontoReal
	if d < 0 {
		d = 0
	}
	if d > descontoRealSaturation {
		d = descontoRealSaturation
	}
	f.points = d / descontoRealSaturation * maxDescontoReal
	return f
}

// typesWithoutParking are priced per lot or per point, not per unit with
// a garage; parking is meaningless for them.
var typesWithoutParking = map[string]bool{
	models.TipoTerreno:   true,
	models.TipoComercial: true,
}

func scoreVagas(rec *models.Imovel) factor {
	f := factor{label: "vagas", max: maxVagas}
	if typesWithoutParking[normalize.Text(rec.Tipo)] {
		f.points = 10
		return f
	}
	if rec.SemVagas {
		return f
	}
	if rec.Vagas == nil {
		// Type normally has parking but the listing doesn't say.
		f.points = 5
		f.unknown = true
		return f
	}
	switch {
	case *rec.Vagas >= 2:
		f.points = maxVagas
	case *rec.Vagas == 1:
		f.points = 9
	}
	return f
}

func scoreBairro(rec *models.Imovel) factor {
	f := factor{label: "bairro", max: maxBairro}
	if rec.Prioridade {
		f.points = maxBairro
	} else {
		f.points = 3
	}
	return f
}

func scoreOcupacao(rec *models.Imovel) factor {
	f := factor{label: "ocupacao", max: maxOcupacao}
	switch rec.Ocupacao {
	case models.OcupacaoDesocupado:
		f.points = maxOcupacao
	case models.OcupacaoOcupado:
		f.points = 2
	default:
		f.points = 5
		f.unknown = true
	}
	return f
}

func (s *Scorer) scorePrazo(rec *models.Imovel) factor {
	f := factor{label: "prazo", max: maxPrazo}
	if rec.Encerramento == nil {
		// Open-ended sale: no urgency either way.
		f.points = prazoAberto
		return f
	}
	days := int(rec.Encerramento.Sub(s.now()).Hours() / 24)
	switch {
	case days <= 3:
		f.points = maxPrazo
	case days <= 7:
		f.points = 12
	case days <= 14:
		f.points = 9
	case days <= 30:
		f.points = 6
	default:
		f.points = 3
	}
	return f
}
