// Package report renders the ranked catalog as a static HTML page.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
)

type Generator struct {
	path   string
	logger *logrus.Logger
	tmpl   *template.Template
}

func NewGenerator(path string, logger *logrus.Logger) (*Generator, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("R$ %.0f", v) },
		"moneyPtr": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("R$ %.0f", *v)
		},
		"score": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%.0f", *v)
		},
		"pct": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%.0f%%", *v)
		},
	}).Parse(reportHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Generator{path: path, logger: logger, tmpl: tmpl}, nil
}

type reportData struct {
	GeneratedAt string
	Total       int
	Novos       int
	Records     []*models.Imovel
}

// Generate writes the report for the given catalog, replacing any
// previous report at the same path.
func (g *Generator) Generate(records []*models.Imovel) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	novos := 0
	for _, rec := range records {
		if rec.Novo {
			novos++
		}
	}

	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	data := reportData{
		GeneratedAt: time.Now().Format("02/01/2006 15:04"),
		Total:       len(records),
		Novos:       novos,
		Records:     records,
	}
	if err := g.tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"path":    g.path,
		"records": len(records),
	}).Info("Generated HTML report")
	return nil
}

const reportHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Oportunidades de Leilão</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
tr.novo { background: #eaffea; }
.alerta { color: #b00; font-size: 0.85em; }
.breakdown { color: #666; font-size: 0.8em; }
</style>
</head>
<body>
<h1>Oportunidades de Leilão</h1>
<p>Gerado em {{.GeneratedAt}} — {{.Total}} imóveis, {{.Novos}} novos.</p>
<table>
<tr><th>Score</th><th>Bairro</th><th>Endereço</th><th>Tipo</th><th>Lance</th><th>R$/m²</th><th>Desc. real</th><th>Fonte</th></tr>
{{range .Records}}
<tr{{if .Novo}} class="novo"{{end}}>
<td>{{score .Score}}<div class="breakdown">{{.ScoreBreakdown}}</div></td>
<td>{{.Bairro}}</td>
<td><a href="{{.Link}}">{{.Endereco}}</a>
{{range .Alertas}}<div class="alerta">{{.}}</div>{{end}}</td>
<td>{{.Tipo}}</td>
<td>{{money .Lance}}</td>
<td>{{moneyPtr .PrecoM2}}</td>
<td>{{pct .DescontoReal}}</td>
<td>{{.Fonte}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`
