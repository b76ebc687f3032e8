package repo

import (
	"context"
	"errors"

	"github.com/domgielar/UDash/internal/domain"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderExists     = errors.New("order already exists")
	ErrAlreadyAccepted = errors.New("order has already been accepted")
	ErrNotAssigned     = errors.New("order is assigned to a different dasher")
)

// OrderRepository owns the canonical order records. Accept and Transition
// are atomic read-modify-write operations: the lifecycle checks run under
// the store's lock so two racing dashers can never both win.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAvailable(ctx context.Context) ([]domain.Order, error)
	Accept(ctx context.Context, id, dasherID string) (*domain.Order, error)
	Transition(ctx context.Context, id string, target domain.OrderStatus, role domain.Role, dasherID string) (*domain.Order, error)
	Deactivate(ctx context.Context, id string) error
}

type DasherRepository interface {
	AddEarnings(ctx context.Context, dasherID string, amount float64) error
	GetEarnings(ctx context.Context, dasherID string) (float64, error)
}
