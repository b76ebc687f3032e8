package memory

import (
	"context"
	"sort"
	"time"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/repo"
)

type OrderRepository struct {
	storage *Storage
}

func NewOrderRepository(storage *Storage) *OrderRepository {
	return &OrderRepository{storage: storage}
}

// clone deep-copies an order so no caller ever aliases stored state.
func clone(order *domain.Order) *domain.Order {
	cp := *order
	cp.Items = make([]domain.CartLine, len(order.Items))
	copy(cp.Items, order.Items)
	return &cp
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	if _, exists := r.storage.orders[order.ID]; exists {
		return repo.ErrOrderExists
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	r.storage.orders[order.ID] = clone(order)

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	order, ok := r.storage.orders[id]
	if !ok {
		return nil, repo.ErrOrderNotFound
	}

	return clone(order), nil
}

// ListAvailable returns active orders still waiting for a dasher, oldest
// first.
func (r *OrderRepository) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	available := []domain.Order{}
	for _, order := range r.storage.orders {
		if order.Active && order.Status == domain.StatusPlaced && order.DasherID == "" {
			available = append(available, *clone(order))
		}
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].CreatedAt.Before(available[j].CreatedAt)
	})

	return available, nil
}

// Accept assigns a dasher and removes the order from the available pool in
// one step. Exactly one dasher can win; later attempts fail.
func (r *OrderRepository) Accept(ctx context.Context, id, dasherID string) (*domain.Order, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	order, ok := r.storage.orders[id]
	if !ok {
		return nil, repo.ErrOrderNotFound
	}

	if order.DasherID != "" || order.Status != domain.StatusPlaced {
		return nil, repo.ErrAlreadyAccepted
	}

	order.DasherID = dasherID
	order.Status = domain.StatusAccepted

	return clone(order), nil
}

// Transition applies a status change under the store lock, enforcing the
// lifecycle contract and, for dasher moves, that the acting dasher is the
// assigned one.
func (r *OrderRepository) Transition(ctx context.Context, id string, target domain.OrderStatus, role domain.Role, dasherID string) (*domain.Order, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	order, ok := r.storage.orders[id]
	if !ok {
		return nil, repo.ErrOrderNotFound
	}

	if role == domain.RoleDasher && order.DasherID != dasherID {
		return nil, repo.ErrNotAssigned
	}

	if err := order.Status.CanTransition(target, role); err != nil {
		return nil, err
	}

	order.Status = target
	if target == domain.StatusCancelled {
		order.Active = false
	}

	return clone(order), nil
}

// Deactivate drops an order from active visibility without deleting the
// record.
func (r *OrderRepository) Deactivate(ctx context.Context, id string) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	order, ok := r.storage.orders[id]
	if !ok {
		return repo.ErrOrderNotFound
	}

	order.Active = false

	return nil
}
