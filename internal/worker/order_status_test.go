package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/queue"
	"github.com/domgielar/UDash/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func publishEvent(t *testing.T, broker queue.Broker, event domain.OrderStatusEvent) {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, broker.Publish(context.Background(), queue.QueueOrderStatus, payload))
}

func seedOrder(t *testing.T, orders *memory.OrderRepository, id string) {
	t.Helper()

	require.NoError(t, orders.Create(context.Background(), &domain.Order{
		ID:     id,
		Items:  []domain.CartLine{{Name: "Wrap", Quantity: 1}},
		Status: domain.StatusDelivered,
		Active: true,
	}))
}

func isActive(t *testing.T, orders *memory.OrderRepository, id string) bool {
	t.Helper()

	order, err := orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	return order.Active
}

func TestDeliveredEventDeactivatesAfterCooldown(t *testing.T) {
	orders := memory.NewOrderRepository(memory.New())
	broker := queue.NewMemoryBroker()
	t.Cleanup(func() { _ = broker.Close() })

	seedOrder(t, orders, "ORDER-1")

	w := NewOrderStatusWorker(orders, broker, 30*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	publishEvent(t, broker, domain.OrderStatusEvent{
		OrderID:   "ORDER-1",
		EventType: domain.EventOrderDelivered,
		NewStatus: domain.StatusDelivered,
	})

	// still visible during the cooldown window
	time.Sleep(10 * time.Millisecond)
	assert.True(t, isActive(t, orders, "ORDER-1"))

	assert.Eventually(t, func() bool {
		return !isActive(t, orders, "ORDER-1")
	}, time.Second, 10*time.Millisecond)
}

func TestNonDeliveredEventsAreIgnored(t *testing.T) {
	orders := memory.NewOrderRepository(memory.New())
	broker := queue.NewMemoryBroker()
	t.Cleanup(func() { _ = broker.Close() })

	seedOrder(t, orders, "ORDER-1")

	w := NewOrderStatusWorker(orders, broker, 10*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	publishEvent(t, broker, domain.OrderStatusEvent{
		OrderID:   "ORDER-1",
		EventType: domain.EventOrderStatusChanged,
		NewStatus: domain.StatusAtHall,
	})

	time.Sleep(100 * time.Millisecond)
	assert.True(t, isActive(t, orders, "ORDER-1"))
}

func TestStopCancelsPendingCooldowns(t *testing.T) {
	orders := memory.NewOrderRepository(memory.New())
	broker := queue.NewMemoryBroker()
	t.Cleanup(func() { _ = broker.Close() })

	seedOrder(t, orders, "ORDER-1")

	w := NewOrderStatusWorker(orders, broker, 50*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, w.Start())

	publishEvent(t, broker, domain.OrderStatusEvent{
		OrderID:   "ORDER-1",
		EventType: domain.EventOrderDelivered,
		NewStatus: domain.StatusDelivered,
	})

	// let the worker pick the event up, then stop before the cooldown fires
	time.Sleep(10 * time.Millisecond)
	w.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.True(t, isActive(t, orders, "ORDER-1"))
}

func TestMalformedPayloadDoesNotCrashWorker(t *testing.T) {
	orders := memory.NewOrderRepository(memory.New())
	broker := queue.NewMemoryBroker()
	t.Cleanup(func() { _ = broker.Close() })

	seedOrder(t, orders, "ORDER-1")

	w := NewOrderStatusWorker(orders, broker, 10*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	require.NoError(t, broker.Publish(context.Background(), queue.QueueOrderStatus, []byte("not json")))

	publishEvent(t, broker, domain.OrderStatusEvent{
		OrderID:   "ORDER-1",
		EventType: domain.EventOrderDelivered,
		NewStatus: domain.StatusDelivered,
	})

	assert.Eventually(t, func() bool {
		return !isActive(t, orders, "ORDER-1")
	}, time.Second, 10*time.Millisecond)
}
