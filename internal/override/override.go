// Package override merges manual corrections into the resolved catalog.
package override

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"

	"arremate/server/internal/models"
)

// Load reads the override file, a JSON object keyed by property id.
// A missing or corrupt file degrades to no overrides; it never fails
// the run.
func Load(path string, logger *logrus.Logger) map[string]models.Override {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Warn("Could not read override file, continuing without overrides")
		}
		return nil
	}

	var overrides map[string]models.Override
	if err := json.Unmarshal(data, &overrides); err != nil {
		logger.WithError(err).WithField("path", path).Warn("Malformed override file, continuing without overrides")
		return nil
	}
	return overrides
}

// Apply folds the corrections into the records. Purely additive: it can
// flag missing parking and append warnings, never create, remove or
// rename a record. Unknown ids are silently ignored.
func Apply(records []*models.Imovel, overrides map[string]models.Override) {
	if len(overrides) == 0 {
		return
	}
	for _, rec := range records {
		ov, ok := overrides[rec.ID]
		if !ok {
			continue
		}
		if ov.SemVagas != nil && *ov.SemVagas {
			rec.SemVagas = true
		}
		for _, a := range ov.Alertas {
			rec.AddAlerta(a)
		}
	}
}
