package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/pricing"
	"github.com/domgielar/UDash/internal/queue"
	"github.com/domgielar/UDash/internal/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const estimatedDeliveryWindow = 25 * time.Minute

var (
	ErrEmptyCart     = errors.New("items array is required and cannot be empty")
	ErrMissingFields = errors.New("diner name, email, and delivery address are required")
)

type OrderService struct {
	orderRepo  repo.OrderRepository
	dasherRepo repo.DasherRepository
	broker     queue.Broker
	logger     *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	dasherRepo repo.DasherRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		dasherRepo: dasherRepo,
		broker:     broker,
		logger:     logger,
	}
}

type PlaceOrderInput struct {
	Items           []domain.CartLine
	Subtotal        float64
	DeliveryFee     float64
	Tip             float64
	Total           float64
	DeliveryAddress string
	DinerName       string
	DinerEmail      string
	FromLocation    string
}

func newOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), suffix)
}

// PlaceOrder validates and persists a new order. Duplicate cart lines are
// merged, and missing money figures are recomputed from the cart so the
// record is always internally consistent.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if input.DinerName == "" || input.DinerEmail == "" || input.DeliveryAddress == "" {
		return nil, ErrMissingFields
	}

	lines := domain.MergeCartLines(input.Items)

	subtotal := input.Subtotal
	if subtotal == 0 {
		subtotal = pricing.Subtotal(lines)
	}

	total := input.Total
	if total == 0 {
		total = subtotal + input.DeliveryFee + input.Tip
	}

	now := time.Now()
	order := &domain.Order{
		ID:                newOrderID(),
		CreatedAt:         now,
		Status:            domain.StatusPlaced,
		DinerName:         input.DinerName,
		DinerEmail:        input.DinerEmail,
		DeliveryAddress:   input.DeliveryAddress,
		FromLocation:      input.FromLocation,
		Items:             lines,
		Subtotal:          subtotal,
		DeliveryFee:       input.DeliveryFee,
		Tip:               input.Tip,
		Total:             total,
		EstimatedDelivery: now.Add(estimatedDeliveryWindow),
		Active:            true,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Infow("order placed", "order_id", order.ID, "location", order.FromLocation, "total", order.Total)

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType: domain.EventOrderPlaced,
		OrderID:   order.ID,
		NewStatus: order.Status,
		Timestamp: now,
	})

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ListAvailable returns the pool of orders a dasher may accept.
func (s *OrderService) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListAvailable(ctx)
}

// Accept assigns a dasher to an order. The store performs the exclusivity
// check: once one dasher accepts, a second attempt fails.
func (s *OrderService) Accept(ctx context.Context, orderID, dasherID string) (*domain.Order, error) {
	order, err := s.orderRepo.Accept(ctx, orderID, dasherID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("order accepted", "order_id", orderID, "dasher_id", dasherID)

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType: domain.EventOrderAccepted,
		OrderID:   orderID,
		OldStatus: domain.StatusPlaced,
		NewStatus: order.Status,
		DasherID:  dasherID,
		Timestamp: time.Now(),
	})

	return order, nil
}

// Advance moves an order one step forward on behalf of the assigned dasher.
// Reaching Delivered credits the dasher's payout.
func (s *OrderService) Advance(ctx context.Context, orderID string, target domain.OrderStatus, dasherID string) (*domain.Order, error) {
	before, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.Transition(ctx, orderID, target, domain.RoleDasher, dasherID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("order status changed", "order_id", orderID, "from", before.Status, "to", order.Status)

	eventType := domain.EventOrderStatusChanged
	if target == domain.StatusDelivered {
		eventType = domain.EventOrderDelivered

		payout := order.DeliveryFee + order.Tip
		if err := s.dasherRepo.AddEarnings(ctx, dasherID, payout); err != nil {
			s.logger.Errorw("failed to credit dasher earnings", "order_id", orderID, "dasher_id", dasherID, "error", err)
		}
	}

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType: eventType,
		OrderID:   orderID,
		OldStatus: before.Status,
		NewStatus: order.Status,
		DasherID:  dasherID,
		Timestamp: time.Now(),
	})

	return order, nil
}

// Cancel is the customer's only post-placement move, allowed while no dasher
// has accepted.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	before, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.Transition(ctx, orderID, domain.StatusCancelled, domain.RoleCustomer, "")
	if err != nil {
		return nil, err
	}

	s.logger.Infow("order cancelled", "order_id", orderID)

	s.publishEvent(ctx, domain.OrderStatusEvent{
		EventType: domain.EventOrderCancelled,
		OrderID:   orderID,
		OldStatus: before.Status,
		NewStatus: order.Status,
		Timestamp: time.Now(),
	})

	return order, nil
}

func (s *OrderService) GetEarnings(ctx context.Context, dasherID string) (float64, error) {
	return s.dasherRepo.GetEarnings(ctx, dasherID)
}

// publishEvent is best-effort: a notification failure never fails the
// mutation that already happened.
func (s *OrderService) publishEvent(ctx context.Context, event domain.OrderStatusEvent) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "order_id", event.OrderID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderStatus, eventBytes); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", event.OrderID, "error", err)
	}
}
