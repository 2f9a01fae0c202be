// Package telegram notifies a chat about the day's best new deals.
package telegram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"arremate/server/config"
	"arremate/server/internal/models"
)

type Service struct {
	logger *logrus.Logger
	client *http.Client
	cfg    *config.Config
}

func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		logger: logger,
		cfg:    cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyTopDeals sends one message per new record at or above the
// configured score cutoff, best first, capped at the configured top N.
// Notification failures are logged per record and never fail the run.
func (s *Service) NotifyTopDeals(records []*models.Imovel) {
	if !s.cfg.Telegram.Enabled {
		return
	}

	var deals []*models.Imovel
	for _, rec := range records {
		if rec.Novo && rec.Score != nil && *rec.Score >= s.cfg.Telegram.MinScore {
			deals = append(deals, rec)
		}
	}
	sort.SliceStable(deals, func(i, j int) bool { return *deals[i].Score > *deals[j].Score })
	if len(deals) > s.cfg.Telegram.TopN {
		deals = deals[:s.cfg.Telegram.TopN]
	}

	for _, rec := range deals {
		if err := s.SendMessage(formatDeal(rec)); err != nil {
			s.logger.WithError(err).WithField("id", rec.ID).Error("Failed to send deal notification")
		}
	}
	if len(deals) > 0 {
		s.logger.WithField("count", len(deals)).Info("Sent deal notifications")
	}
}

func formatDeal(rec *models.Imovel) string {
	lines := fmt.Sprintf(
		"<b>Nova oportunidade! (score %.0f)</b>\n\n"+
			"🏠 %s\n"+
			"📍 %s, %s\n"+
			"💰 R$ %.0f\n",
		*rec.Score, rec.Endereco, rec.Bairro, rec.Tipo, rec.Lance,
	)
	if rec.DescontoReal != nil {
		lines += fmt.Sprintf("📊 %.0f%% abaixo do mercado\n", *rec.DescontoReal)
	}
	if rec.Encerramento != nil {
		lines += fmt.Sprintf("⏰ Encerra em %s\n", rec.Encerramento.Format("02/01/2006"))
	}
	for _, a := range rec.Alertas {
		lines += fmt.Sprintf("⚠️ %s\n", a)
	}
	lines += fmt.Sprintf("\n🔗 <a href=\"%s\">Ver anúncio</a>", rec.Link)
	return lines
}

// SendMessage sends a message to the configured Telegram chat.
func (s *Service) SendMessage(message string) error {
	if s.cfg.Telegram.BotToken == "" {
		return errors.New("Telegram bot token is not configured")
	}
	if s.cfg.Telegram.ChatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.cfg.Telegram.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.cfg.Telegram.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}
	return nil
}
