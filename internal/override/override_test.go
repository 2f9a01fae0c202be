package override

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arremate/server/internal/models"
)

func TestLoad_MissingFile(t *testing.T) {
	logger := logrus.New()
	overrides := Load(filepath.Join(t.TempDir(), "missing.json"), logger)
	assert.Nil(t, overrides)
}

func TestLoad_MalformedFile(t *testing.T) {
	logger := logrus.New()
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	overrides := Load(path, logger)
	assert.Nil(t, overrides)
}

func TestLoad_ValidFile(t *testing.T) {
	logger := logrus.New()
	path := filepath.Join(t.TempDir(), "overrides.json")
	content := `{"caixa-1": {"semVagas": true, "alertas": ["Condomínio atrasado"]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	overrides := Load(path, logger)
	require.Len(t, overrides, 1)
	require.NotNil(t, overrides["caixa-1"].SemVagas)
	assert.True(t, *overrides["caixa-1"].SemVagas)
	assert.Equal(t, []string{"Condomínio atrasado"}, overrides["caixa-1"].Alertas)
}

func TestApply(t *testing.T) {
	semVagas := true
	overrides := map[string]models.Override{
		"caixa-1":   {SemVagas: &semVagas, Alertas: []string{"Condomínio atrasado"}},
		"unknown-9": {SemVagas: &semVagas},
	}

	matched := &models.Imovel{ID: "caixa-1", Lance: 199000}
	untouched := &models.Imovel{ID: "caixa-2", Lance: 150000}
	records := []*models.Imovel{matched, untouched}

	Apply(records, overrides)

	// Additive only: flags and alerts land on the matched record, the
	// unknown id is ignored and no record was created or removed.
	assert.Len(t, records, 2)
	assert.True(t, matched.SemVagas)
	assert.Equal(t, []string{"Condomínio atrasado"}, matched.Alertas)
	assert.False(t, untouched.SemVagas)
	assert.Empty(t, untouched.Alertas)
}

func TestApply_NoOverrides(t *testing.T) {
	rec := &models.Imovel{ID: "caixa-1", Lance: 199000}
	Apply([]*models.Imovel{rec}, nil)
	assert.False(t, rec.SemVagas)
}
