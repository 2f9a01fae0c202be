package models

import "time"

// Occupancy status values as reported by the sources.
const (
	OcupacaoOcupado      = "ocupado"
	OcupacaoDesocupado   = "desocupado"
	OcupacaoDesconhecida = ""
)

// Property type labels, normalized form.
const (
	TipoCasa        = "casa"
	TipoApartamento = "apartamento"
	TipoSobrado     = "sobrado"
	TipoTerreno     = "terreno"
	TipoComercial   = "comercial"
)

// Imovel is one physical listing. Raw fields are filled by the sources,
// derived fields only by the enrichment and scoring stages; a nil derived
// field means the stage had no usable data for it.
type Imovel struct {
	ID       string `json:"id"`
	Fonte    string `json:"fonte"`
	Link     string `json:"link"`
	Tipo     string `json:"tipo"`
	Bairro   string `json:"bairro"`
	Endereco string `json:"endereco"`

	Lance      float64    `json:"lance"`
	Avaliacao  *float64   `json:"avaliacao,omitempty"`
	Desconto   *float64   `json:"desconto,omitempty"`
	Modalidade string     `json:"modalidade"`
	Ocupacao   string     `json:"ocupacao,omitempty"`
	Area       string     `json:"area,omitempty"`
	Quartos    *int       `json:"quartos,omitempty"`
	Vagas      *int       `json:"vagas,omitempty"`
	SemVagas   bool       `json:"sem_vagas,omitempty"`

	Encerramento *time.Time `json:"encerramento,omitempty"`

	// Derived by enrichment and scoring.
	PrecoM2        *float64 `json:"preco_m2,omitempty"`
	MediaM2Bairro  *float64 `json:"media_m2_bairro,omitempty"`
	DescontoReal   *float64 `json:"desconto_real,omitempty"`
	Score          *float64 `json:"score,omitempty"`
	ScoreBreakdown string   `json:"score_breakdown,omitempty"`
	Alertas        []string `json:"alertas,omitempty"`
	Novo           bool     `json:"novo"`
	Prioridade     bool     `json:"prioridade"`
}

// AddAlerta appends a warning, skipping exact duplicates so merged
// clusters don't repeat the same message per member.
func (i *Imovel) AddAlerta(msg string) {
	for _, a := range i.Alertas {
		if a == msg {
			return
		}
	}
	i.Alertas = append(i.Alertas, msg)
}

// Override is one manual correction keyed by property id. Purely
// additive: it can flag missing parking and attach warnings, nothing else.
type Override struct {
	SemVagas *bool    `json:"semVagas,omitempty"`
	Alertas  []string `json:"alertas,omitempty"`
}

// CatalogStats summarizes one day's resolved catalog for the API.
type CatalogStats struct {
	Total        int     `json:"total"`
	Novos        int     `json:"novos"`
	AverageScore float64 `json:"average_score"`
	AverageLance float64 `json:"average_lance"`
	TopBairros   []BairroCount `json:"top_bairros"`
}

type BairroCount struct {
	Bairro string `json:"bairro"`
	Count  int    `json:"count"`
}
