package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Pipeline configuration
	Pipeline struct {
		// Directory holding the daily snapshot archive
		DataDir string `env:"DATA_DIR" envDefault:"data"`

		// Manual corrections file, keyed by property id
		OverridePath string `env:"OVERRIDE_PATH" envDefault:"config/overrides.json"`

		// Optional JSON file replacing the built-in price table
		PriceTablePath string `env:"PRICE_TABLE_PATH" envDefault:""`

		// Static HTML report output path
		ReportPath string `env:"REPORT_PATH" envDefault:"data/report.html"`

		// Hour of day (local time) for the scheduled run
		RunHour int `env:"RUN_HOUR" envDefault:"6"`
	}

	// Sources configuration
	Sources struct {
		// Overall timeout per source fetch, in seconds
		FetchTimeout int `env:"SOURCE_FETCH_TIMEOUT" envDefault:"120"`

		// Fixed delay between per-record detail requests, in milliseconds
		DetailDelay int `env:"SOURCE_DETAIL_DELAY" envDefault:"1500"`

		// Maximum detail pages fetched per run for browser-rendered sources
		MaxDetailFetches int `env:"SOURCE_MAX_DETAIL_FETCHES" envDefault:"80"`

		CaixaURL string `env:"CAIXA_CSV_URL" envDefault:"https://venda-imoveis.caixa.gov.br/listaweb/Lista_imoveis_PR.csv"`
		MegaURL  string `env:"MEGA_API_URL" envDefault:"https://www.megaleiloes.com.br/api/imoveis?uf=PR&cidade=curitiba"`
		ZukURL   string `env:"ZUK_BASE_URL" envDefault:"https://www.portalzuk.com.br/leilao-de-imoveis/pr/curitiba"`
	}

	// Notification configuration
	Telegram struct {
		Enabled  bool   `env:"TELEGRAM_ENABLED" envDefault:"false"`
		BotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
		ChatID   string `env:"TELEGRAM_CHAT_ID" envDefault:""`

		// Only new records scoring at least this much are notified
		MinScore float64 `env:"TELEGRAM_MIN_SCORE" envDefault:"70"`

		// Maximum notifications per run
		TopN int `env:"TELEGRAM_TOP_N" envDefault:"5"`
	}

	// HTTP API configuration
	API struct {
		Port string `env:"API_PORT" envDefault:"5280"`
	}
}

func LoadConfig() (*Config, error) {
	// Best effort: a missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
