package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zukListingHTML = `<!DOCTYPE html><html><body>
<div class="card-property">
  <a class="card-property-link" href="/imovel/apartamento-batel-789"></a>
  <span class="card-property-type">Apartamento</span>
  <span class="card-property-neighborhood">Batel</span>
  <p class="card-property-address">Av. do Batel, 1868 ap 31</p>
  <span class="card-property-price">R$ 310.000,00</span>
  <span class="card-property-appraisal">R$ 480.000,00</span>
  <span class="card-property-modality">Leilão Judicial</span>
  <span class="card-property-auction-date">20/04/2025</span>
</div>
<div class="card-property">
  <span class="card-property-type">Casa</span>
</div>
</body></html>`

const zukDetailHTML = `<!DOCTYPE html><html><body>
<ul class="property-features">
  <li>Imóvel desocupado</li>
  <li>Área privativa: 50m²</li>
  <li>2 quartos</li>
  <li>1 vaga de garagem</li>
</ul>
</body></html>`

func newZukTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(zukListingHTML))
	})
	mux.HandleFunc("/imovel/apartamento-batel-789", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(zukDetailHTML))
	})
	return httptest.NewServer(mux)
}

func TestZuk_FetchListingOnly(t *testing.T) {
	server := newZukTestServer()
	defer server.Close()

	// maxDetails 0 keeps the run to the listing grid.
	src := NewZuk(server.URL, time.Millisecond, 0, logrus.New())
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)

	// The link-less card is not a listing.
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "zuk-apartamento-batel-789", rec.ID)
	assert.Equal(t, "zuk", rec.Fonte)
	assert.Equal(t, "Batel", rec.Bairro)
	assert.Equal(t, "Av. do Batel, 1868 ap 31", rec.Endereco)
	assert.Equal(t, 310000.0, rec.Lance)
	require.NotNil(t, rec.Desconto)
	require.NotNil(t, rec.Encerramento)
	assert.Equal(t, "", rec.Ocupacao)
	assert.Equal(t, "", rec.Area)
}

func TestZuk_FetchWithDetails(t *testing.T) {
	server := newZukTestServer()
	defer server.Close()

	src := NewZuk(server.URL, time.Millisecond, 10, logrus.New())
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "desocupado", rec.Ocupacao)
	assert.Contains(t, rec.Area, "50m²")
	require.NotNil(t, rec.Quartos)
	assert.Equal(t, 2, *rec.Quartos)
	require.NotNil(t, rec.Vagas)
	assert.Equal(t, 1, *rec.Vagas)
}
