package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
)

// MegaLeiloes exposes its listings through a JSON API; structured but
// thinner than the Caixa export (no occupancy data).
type MegaLeiloes struct {
	url    string
	client *http.Client
	logger *logrus.Logger
}

func NewMegaLeiloes(url string, logger *logrus.Logger) *MegaLeiloes {
	return &MegaLeiloes{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (m *MegaLeiloes) Name() string  { return "megaleiloes" }
func (m *MegaLeiloes) Priority() int { return 1 }

type megaListing struct {
	ID           string `json:"id"`
	Titulo       string `json:"titulo"`
	Tipo         string `json:"tipo"`
	Bairro       string `json:"bairro"`
	Endereco     string `json:"endereco"`
	Lance        string `json:"lance_inicial"`
	Avaliacao    string `json:"avaliacao"`
	Modalidade   string `json:"modalidade"`
	Area         string `json:"area"`
	Quartos      *int   `json:"quartos"`
	Vagas        *int   `json:"vagas"`
	Encerramento string `json:"data_encerramento"`
	URL          string `json:"url"`
}

type megaResponse struct {
	Imoveis []megaListing `json:"imoveis"`
}

func (m *MegaLeiloes) Fetch(ctx context.Context) ([]*models.Imovel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, m.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed megaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var records []*models.Imovel
	skipped := 0
	for _, l := range parsed.Imoveis {
		rec, ok := m.toRecord(l)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return dropInvalid(records, m.Name(), skipped, m.logger), nil
}

func (m *MegaLeiloes) toRecord(l megaListing) (*models.Imovel, bool) {
	if l.ID == "" {
		return nil, false
	}
	rec := &models.Imovel{
		ID:         "mega-" + l.ID,
		Fonte:      m.Name(),
		Link:       l.URL,
		Tipo:       normalize.Text(l.Tipo),
		Bairro:     l.Bairro,
		Endereco:   l.Endereco,
		Lance:      normalize.Currency(l.Lance),
		Modalidade: l.Modalidade,
		Area:       l.Area,
		Quartos:    l.Quartos,
		Vagas:      l.Vagas,
	}
	if v := normalize.Currency(l.Avaliacao); v > 0 {
		rec.Avaliacao = &v
		if rec.Lance > 0 && v > rec.Lance {
			d := (1 - rec.Lance/v) * 100
			rec.Desconto = &d
		}
	}
	if t, err := time.Parse(time.RFC3339, l.Encerramento); err == nil {
		rec.Encerramento = &t
	}
	return rec, true
}
