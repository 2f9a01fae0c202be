package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
	"arremate/server/internal/normalize"
	"arremate/server/internal/pipeline"
)

type Handler struct {
	catalog *Catalog
	logger  *logrus.Logger
}

func NewHandler(catalog *Catalog, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{catalog: catalog, logger: logger}
}

type listFilters struct {
	Bairro   string `form:"bairro"`
	Tipo     string `form:"tipo"`
	MinScore string `form:"min_score"`
	Novos    bool   `form:"novos"`
}

// GetImoveis lists the latest catalog, optionally filtered by bairro,
// tipo, minimum score or novelty.
func (h *Handler) GetImoveis(c *gin.Context) {
	var filters listFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.logger.WithError(err).Error("Failed to parse list filters")
	}

	minScore := 0.0
	if filters.MinScore != "" {
		if v, err := strconv.ParseFloat(filters.MinScore, 64); err == nil {
			minScore = v
		}
	}
	bairro := normalize.Text(filters.Bairro)
	tipo := normalize.Text(filters.Tipo)

	var out []*models.Imovel
	for _, rec := range h.catalog.Records() {
		if bairro != "" && normalize.Text(rec.Bairro) != bairro {
			continue
		}
		if tipo != "" && normalize.Text(rec.Tipo) != tipo {
			continue
		}
		if filters.Novos && !rec.Novo {
			continue
		}
		if minScore > 0 && (rec.Score == nil || *rec.Score < minScore) {
			continue
		}
		out = append(out, rec)
	}
	if out == nil {
		out = []*models.Imovel{}
	}
	c.JSON(http.StatusOK, out)
}

// GetStats summarizes the latest catalog.
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, pipeline.Stats(h.catalog.Records()))
}

// GetTop returns the N best-scored records, default 10.
func (h *Handler) GetTop(c *gin.Context) {
	n := 10
	if v, err := strconv.Atoi(c.DefaultQuery("n", "10")); err == nil && v > 0 {
		n = v
	}
	records := h.catalog.Records()
	if len(records) > n {
		records = records[:n]
	}
	c.JSON(http.StatusOK, records)
}
