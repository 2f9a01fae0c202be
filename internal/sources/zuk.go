package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
)

// Zuk is a browser-rendered portal scraped with colly. The listing grid
// carries address and price; occupancy and area only appear on the
// detail page, so each record needs one follow-up request.
type Zuk struct {
	baseURL string
	logger  *logrus.Logger

	// Detail pages are fetched sequentially through this limiter with a
	// fixed inter-request delay. Politeness toward the upstream site is
	// a deliberate trade against throughput, not an accident.
	limiter    *rate.Limiter
	maxDetails int
}

func NewZuk(baseURL string, detailDelay time.Duration, maxDetails int, logger *logrus.Logger) *Zuk {
	return &Zuk{
		baseURL:    baseURL,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Every(detailDelay), 1),
		maxDetails: maxDetails,
	}
}

func (z *Zuk) Name() string  { return "zuk" }
func (z *Zuk) Priority() int { return 2 }

func (z *Zuk) Fetch(ctx context.Context) ([]*models.Imovel, error) {
	records, err := z.fetchListing(ctx)
	if err != nil {
		return nil, err
	}

	fetched := 0
	for _, rec := range records {
		if fetched >= z.maxDetails {
			break
		}
		if err := z.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("detail fetch interrupted: %w", err)
		}
		if err := z.fetchDetails(rec); err != nil {
			z.logger.WithError(err).WithField("link", rec.Link).Warn("Detail fetch failed, keeping listing data")
		}
		fetched++
	}
	return dropInvalid(records, z.Name(), 0, z.logger), nil
}

func (z *Zuk) fetchListing(ctx context.Context) ([]*models.Imovel, error) {
	collector := colly.NewCollector(colly.UserAgent(userAgent))
	collector.SetRequestTimeout(60 * time.Second)

	var records []*models.Imovel
	var fetchErr error

	collector.OnHTML("div.card-property", func(e *colly.HTMLElement) {
		rec := z.parseCard(e)
		if rec == nil {
			return
		}
		select {
		case <-ctx.Done():
			fetchErr = ctx.Err()
		default:
			records = append(records, rec)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("listing page failed: %w", err)
	})

	if err := collector.Visit(z.baseURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", z.baseURL, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return records, nil
}

func (z *Zuk) parseCard(e *colly.HTMLElement) *models.Imovel {
	href := e.ChildAttr("a.card-property-link", "href")
	if href == "" {
		return nil
	}
	link := e.Request.AbsoluteURL(href)

	rec := &models.Imovel{
		ID:         "zuk-" + slugFromLink(link),
		Fonte:      z.Name(),
		Link:       link,
		Tipo:       normalize.Text(e.ChildText("span.card-property-type")),
		Bairro:     strings.TrimSpace(e.ChildText("span.card-property-neighborhood")),
		Endereco:   strings.TrimSpace(e.ChildText("p.card-property-address")),
		Lance:      normalize.Currency(e.ChildText("span.card-property-price")),
		Modalidade: strings.TrimSpace(e.ChildText("span.card-property-modality")),
	}

	if v := normalize.Currency(e.ChildText("span.card-property-appraisal")); v > 0 {
		rec.Avaliacao = &v
		if rec.Lance > 0 && v > rec.Lance {
			d := (1 - rec.Lance/v) * 100
			rec.Desconto = &d
		}
	}
	if dt := parseDate(e.ChildText("span.card-property-auction-date")); dt != nil {
		rec.Encerramento = dt
	}
	return rec
}

// fetchDetails fills occupancy, area and parking from the detail page.
func (z *Zuk) fetchDetails(rec *models.Imovel) error {
	collector := colly.NewCollector(colly.UserAgent(userAgent))
	collector.SetRequestTimeout(30 * time.Second)

	var fetchErr error

	collector.OnHTML("ul.property-features li", func(e *colly.HTMLElement) {
		text := normalize.Text(e.Text)
		switch {
		case strings.Contains(text, "desocupado"):
			rec.Ocupacao = models.OcupacaoDesocupado
		case strings.Contains(text, "ocupado"):
			rec.Ocupacao = models.OcupacaoOcupado
		case strings.Contains(text, "m2") || strings.Contains(text, "m²"):
			if rec.Area == "" {
				rec.Area = strings.TrimSpace(e.Text)
			}
		case strings.Contains(text, "vaga"):
			if n := firstInt(text); n != nil {
				rec.Vagas = n
			} else if strings.Contains(text, "sem vaga") {
				rec.SemVagas = true
			}
		case strings.Contains(text, "quarto") || strings.Contains(text, "dormitorio"):
			if n := firstInt(text); n != nil {
				rec.Quartos = n
			}
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(rec.Link); err != nil {
		return err
	}
	collector.Wait()
	return fetchErr
}

func slugFromLink(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

func firstInt(s string) *int {
	for _, field := range strings.Fields(s) {
		if n, err := strconv.Atoi(field); err == nil {
			return &n
		}
	}
	return nil
}
