// Package memory holds the process-lifetime state of the service. Orders and
// dasher earnings live only as long as the process and are lost on restart;
// that is an accepted limitation of the scope. All mutation is serialized
// behind a single mutex so the customer and dasher views always observe the
// same logical order.
package memory

import (
	"context"
	"sync"

	"github.com/domgielar/UDash/internal/domain"
)

type Storage struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	dashers map[string]float64
}

func New() *Storage {
	return &Storage{
		orders:  make(map[string]*domain.Order),
		dashers: make(map[string]float64),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	return nil
}
