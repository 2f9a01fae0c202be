package dedup

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arremate/server/internal/models"
)

func newTestResolver() *Resolver {
	logger := logrus.New()
	return NewResolver(logger, map[string]int{"caixa": 0, "megaleiloes": 1, "zuk": 2})
}

func TestMatch_SameProperty(t *testing.T) {
	a := &models.Imovel{Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}
	b := &models.Imovel{Fonte: "zuk", Bairro: "Portão", Endereco: "R. A, 123", Lance: 199500}
	assert.True(t, Match(a, b))
}

func TestMatch_DifferentBairroNeverMerges(t *testing.T) {
	// Identical addresses in different neighborhoods stay separate.
	a := &models.Imovel{Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}
	b := &models.Imovel{Fonte: "zuk", Bairro: "Xaxim", Endereco: "Rua A 123", Lance: 199000}
	assert.False(t, Match(a, b))
}

func TestMatch_EmptyBairroOrEnderecoNeverMatches(t *testing.T) {
	a := &models.Imovel{Fonte: "caixa", Bairro: "", Endereco: "Rua A 123", Lance: 199000}
	b := &models.Imovel{Fonte: "zuk", Bairro: "", Endereco: "Rua A 123", Lance: 199000}
	assert.False(t, Match(a, b))

	c := &models.Imovel{Fonte: "caixa", Bairro: "Portão", Endereco: "", Lance: 199000}
	d := &models.Imovel{Fonte: "zuk", Bairro: "Portão", Endereco: "", Lance: 199000}
	assert.False(t, Match(c, d))
}

func TestMatch_PriceOutsideToleranceButStreetNumberContained(t *testing.T) {
	// Prices disagree by far more than the tolerance; the shared street
	// number still makes the match.
	a := &models.Imovel{Fonte: "caixa", Bairro: "Batel", Endereco: "Av. do Batel 1868", Lance: 300000}
	b := &models.Imovel{Fonte: "zuk", Bairro: "Batel", Endereco: "Avenida do Batel, 1868 ap 31", Lance: 450000}
	assert.True(t, Match(a, b))
}

func TestMatch_DissimilarAddresses(t *testing.T) {
	a := &models.Imovel{Fonte: "caixa", Bairro: "Centro", Endereco: "Rua XV de Novembro 100", Lance: 200000}
	b := &models.Imovel{Fonte: "zuk", Bairro: "Centro", Endereco: "Travessa da Lapa 950", Lance: 200000}
	assert.False(t, Match(a, b))
}

func TestResolve_MergesDuplicates(t *testing.T) {
	r := newTestResolver()

	a := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000,
		Alertas: []string{"alerta caixa"}}
	b := &models.Imovel{ID: "zuk-1", Fonte: "zuk", Bairro: "Portão", Endereco: "R. A, 123", Lance: 199500,
		Alertas: []string{"alerta zuk"}}

	out := r.Resolve([]*models.Imovel{a, b})
	require.Len(t, out, 1)

	// Alerts are the union of both inputs'.
	assert.Contains(t, out[0].Alertas, "alerta caixa")
	assert.Contains(t, out[0].Alertas, "alerta zuk")
}

func TestResolve_TransitiveChain(t *testing.T) {
	r := newTestResolver()

	// a matches b and b matches c; a and c land in the same cluster even
	// though their prices alone would not pair them.
	a := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A", Lance: 190000}
	b := &models.Imovel{ID: "mega-1", Fonte: "megaleiloes", Bairro: "Portão", Endereco: "Rua A", Lance: 198000}
	c := &models.Imovel{ID: "zuk-1", Fonte: "zuk", Bairro: "Portão", Endereco: "Rua A", Lance: 206000}

	out := r.Resolve([]*models.Imovel{a, b, c})
	assert.Len(t, out, 1)
}

func TestResolve_RepresentativePrefersOccupancyThenAreaThenSource(t *testing.T) {
	r := newTestResolver()

	// zuk has occupancy data and wins despite the worst source rank.
	caixa := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}
	zuk := &models.Imovel{ID: "zuk-1", Fonte: "zuk", Bairro: "Portão", Endereco: "Rua A, 123", Lance: 199000,
		Ocupacao: models.OcupacaoDesocupado}

	out := r.Resolve([]*models.Imovel{caixa, zuk})
	require.Len(t, out, 1)
	assert.Equal(t, "zuk-1", out[0].ID)

	// With neither occupancy nor area anywhere, source priority decides.
	caixa2 := &models.Imovel{ID: "caixa-2", Fonte: "caixa", Bairro: "Xaxim", Endereco: "Rua B 9", Lance: 150000}
	zuk2 := &models.Imovel{ID: "zuk-2", Fonte: "zuk", Bairro: "Xaxim", Endereco: "Rua B, 9", Lance: 150000}

	out = r.Resolve([]*models.Imovel{zuk2, caixa2})
	require.Len(t, out, 1)
	assert.Equal(t, "caixa-2", out[0].ID)
}

func TestResolve_BackfillsMissingFields(t *testing.T) {
	r := newTestResolver()

	avaliacao := 250000.0
	quartos := 3
	rep := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000,
		Ocupacao: models.OcupacaoDesocupado}
	other := &models.Imovel{ID: "zuk-1", Fonte: "zuk", Bairro: "Portão", Endereco: "Rua A, 123", Lance: 199000,
		Area: "72m²", Avaliacao: &avaliacao, Quartos: &quartos, SemVagas: true}

	out := r.Resolve([]*models.Imovel{rep, other})
	require.Len(t, out, 1)

	merged := out[0]
	assert.Equal(t, "caixa-1", merged.ID)
	assert.Equal(t, "72m²", merged.Area)
	require.NotNil(t, merged.Avaliacao)
	assert.Equal(t, 250000.0, *merged.Avaliacao)
	require.NotNil(t, merged.Quartos)
	assert.Equal(t, 3, *merged.Quartos)
	assert.True(t, merged.SemVagas)
}

func TestResolve_SameSourceNeverCompared(t *testing.T) {
	r := newTestResolver()

	// Each source is internally unique by contract; identical-looking
	// records from one source stay separate.
	a := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}
	b := &models.Imovel{ID: "caixa-2", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}

	out := r.Resolve([]*models.Imovel{a, b})
	assert.Len(t, out, 2)
}

func TestResolve_StandaloneRecordsUntouched(t *testing.T) {
	r := newTestResolver()

	a := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}
	out := r.Resolve([]*models.Imovel{a})
	require.Len(t, out, 1)
	assert.Equal(t, "caixa-1", out[0].ID)
	assert.Empty(t, out[0].Alertas)
}
