package api

import (
	"sync"

	"arremate/server/internal/models"
)

// Catalog holds the latest ranked record set for the API. The pipeline
// swaps the whole slice in after each run; readers only ever see a
// complete snapshot.
type Catalog struct {
	mu      sync.RWMutex
	records []*models.Imovel
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Replace(records []*models.Imovel) {
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
}

func (c *Catalog) Records() []*models.Imovel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records
}
