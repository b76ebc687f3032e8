package memory

import "context"

type DasherRepository struct {
	storage *Storage
}

func NewDasherRepository(storage *Storage) *DasherRepository {
	return &DasherRepository{storage: storage}
}

func (r *DasherRepository) AddEarnings(ctx context.Context, dasherID string, amount float64) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	r.storage.dashers[dasherID] += amount

	return nil
}

func (r *DasherRepository) GetEarnings(ctx context.Context, dasherID string) (float64, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	return r.storage.dashers[dasherID], nil
}
