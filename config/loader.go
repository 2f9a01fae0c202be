package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadPriceTable returns the built-in price table, or the one at path
// when a path is given. A configured-but-broken file is an error: running
// a whole batch against the wrong market baseline is worse than failing
// at startup.
func LoadPriceTable(path string) (*PriceTable, error) {
	if path == "" {
		table := DefaultPriceTable
		return &table, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read price table: %v", err)
	}

	var table PriceTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse price table: %v", err)
	}

	if table.Haircut <= 0 || table.Haircut > 1 {
		return nil, fmt.Errorf("price table haircut out of range: %v", table.Haircut)
	}
	if len(table.Bairros) == 0 {
		return nil, fmt.Errorf("price table has no neighborhoods")
	}
	return &table, nil
}
