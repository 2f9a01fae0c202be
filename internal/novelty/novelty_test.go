package novelty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arremate/server/internal/models"
)

func TestMark_SameIDIsNotNew(t *testing.T) {
	today := []*models.Imovel{{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}}
	yesterday := []*models.Imovel{{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}}

	Mark(today, yesterday)
	assert.False(t, today[0].Novo)
}

func TestMark_AbsentYesterdayIsNew(t *testing.T) {
	today := []*models.Imovel{{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}}

	Mark(today, nil)
	assert.True(t, today[0].Novo)
}

func TestMark_UnstableIDFallsBackToSimilarity(t *testing.T) {
	// The source re-keyed the same listing; the similarity rule still
	// recognizes it as yesterday's property.
	today := []*models.Imovel{{ID: "zuk-novo-555", Fonte: "zuk", Bairro: "Portão", Endereco: "Rua A, 123", Lance: 199500}}
	yesterday := []*models.Imovel{{ID: "zuk-velho-111", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}}

	Mark(today, yesterday)
	assert.False(t, today[0].Novo)
}

func TestMark_MixedCatalog(t *testing.T) {
	seen := &models.Imovel{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}
	fresh := &models.Imovel{ID: "caixa-2", Fonte: "caixa", Bairro: "Xaxim", Endereco: "Rua B 45", Lance: 120000}
	yesterday := []*models.Imovel{{ID: "caixa-1", Fonte: "caixa", Bairro: "Portão", Endereco: "Rua A 123", Lance: 199000}}

	Mark([]*models.Imovel{seen, fresh}, yesterday)
	assert.False(t, seen.Novo)
	assert.True(t, fresh.Novo)
}
