package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/queue"
	"github.com/domgielar/UDash/internal/repo"
	"go.uber.org/zap"
)

// OrderStatusWorker consumes order status events. When an order reaches
// Delivered it waits out a presentation cooldown and then drops the order
// from active visibility, keeping the underlying record.
type OrderStatusWorker struct {
	orderRepo repo.OrderRepository
	broker    queue.Broker
	cooldown  time.Duration
	logger    *zap.SugaredLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewOrderStatusWorker(
	orderRepo repo.OrderRepository,
	broker queue.Broker,
	cooldown time.Duration,
	logger *zap.SugaredLogger,
) *OrderStatusWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderStatusWorker{
		orderRepo: orderRepo,
		broker:    broker,
		cooldown:  cooldown,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *OrderStatusWorker) Start() error {
	w.logger.Info("starting order status worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderStatus, w.handleMessage)
}

func (w *OrderStatusWorker) Stop() {
	w.logger.Info("stopping order status worker")
	w.cancel()
}

func (w *OrderStatusWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderStatusEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal order event", "error", err)
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	if event.EventType != domain.EventOrderDelivered {
		return nil
	}

	w.logger.Infow("order delivered, scheduling cooldown", "order_id", event.OrderID, "cooldown", w.cooldown)

	go w.deactivateAfterCooldown(event.OrderID)

	return nil
}

func (w *OrderStatusWorker) deactivateAfterCooldown(orderID string) {
	select {
	case <-w.ctx.Done():
		return
	case <-time.After(w.cooldown):
	}

	if err := w.orderRepo.Deactivate(w.ctx, orderID); err != nil {
		w.logger.Errorw("failed to deactivate delivered order", "order_id", orderID, "error", err)
		return
	}

	w.logger.Infow("delivered order moved out of active visibility", "order_id", orderID)
}
