package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
)

// Caixa publishes its whole portfolio as a semicolon-separated CSV
// export, the most complete and consistent source we have.
type Caixa struct {
	url    string
	client *http.Client
	logger *logrus.Logger
}

func NewCaixa(url string, logger *logrus.Logger) *Caixa {
	return &Caixa{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

func (c *Caixa) Name() string  { return "caixa" }
func (c *Caixa) Priority() int { return 0 }

func (c *Caixa) Fetch(ctx context.Context) ([]*models.Imovel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.url)
	}

	reader := csv.NewReader(resp.Body)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	cols := columnIndex(rows[0])
	var records []*models.Imovel
	skipped := 0
	for _, row := range rows[1:] {
		rec, ok := c.parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return dropInvalid(records, c.Name(), skipped, c.logger), nil
}

// columnIndex maps normalized header names to positions so column
// reordering in the export doesn't break parsing.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalize.Text(h)] = i
	}
	return cols
}

func (c *Caixa) parseRow(row []string, cols map[string]int) (*models.Imovel, bool) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	numero := get("numero do imovel")
	endereco := get("endereco")
	if numero == "" || endereco == "" {
		return nil, false
	}

	rec := &models.Imovel{
		ID:         "caixa-" + numero,
		Fonte:      c.Name(),
		Link:       get("link de acesso"),
		Tipo:       normalize.Text(get("tipo de imovel")),
		Bairro:     get("bairro"),
		Endereco:   endereco,
		Lance:      normalize.Currency(get("preco")),
		Modalidade: get("modalidade de venda"),
		Area:       get("area do imovel"),
	}

	if v := normalize.Currency(get("valor de avaliacao")); v > 0 {
		rec.Avaliacao = &v
		if rec.Lance > 0 && v > rec.Lance {
			d := (1 - rec.Lance/v) * 100
			rec.Desconto = &d
		}
	}
	if dt := parseDate(get("data do leilao")); dt != nil {
		rec.Encerramento = dt
	}
	if oc := normalize.Text(get("situacao")); oc != "" {
		switch {
		case strings.Contains(oc, "desocupado"):
			rec.Ocupacao = models.OcupacaoDesocupado
		case strings.Contains(oc, "ocupado"):
			rec.Ocupacao = models.OcupacaoOcupado
		}
	}
	return rec, true
}

func parseDate(s string) *time.Time {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
