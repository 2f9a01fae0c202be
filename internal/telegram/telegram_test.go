package telegram

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"arremate/server/config"
	"arremate/server/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestFormatDeal(t *testing.T) {
	close := time.Date(2025, 4, 20, 14, 0, 0, 0, time.UTC)
	rec := &models.Imovel{
		ID: "caixa-1", Bairro: "Batel", Tipo: "apartamento",
		Endereco: "Av. do Batel 1868", Lance: 300000,
		Score: ptr(85.0), DescontoReal: ptr(59.0),
		Encerramento: &close,
		Alertas:      []string{"Dívida de condomínio"},
		Link:         "https://example.com/1",
	}

	msg := formatDeal(rec)
	assert.Contains(t, msg, "score 85")
	assert.Contains(t, msg, "Av. do Batel 1868")
	assert.Contains(t, msg, "59% abaixo do mercado")
	assert.Contains(t, msg, "20/04/2025")
	assert.Contains(t, msg, "Dívida de condomínio")
	assert.Contains(t, msg, "https://example.com/1")
}

func TestNotifyTopDeals_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Enabled = false
	svc := NewService(cfg, logrus.New())

	// Disabled service never touches the network; nothing to assert
	// beyond not panicking on a full record set.
	svc.NotifyTopDeals([]*models.Imovel{
		{ID: "caixa-1", Score: ptr(95.0), Novo: true, Lance: 100000},
	})
}

func TestSendMessage_MissingConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Enabled = true
	svc := NewService(cfg, logrus.New())

	err := svc.SendMessage("hello")
	assert.Error(t, err)
}
