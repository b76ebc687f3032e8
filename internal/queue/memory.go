package queue

import (
	"context"
	"errors"
	"sync"
)

const defaultBufferSize = 64

var ErrBrokerClosed = errors.New("broker is closed")

// MemoryBroker is an in-process Broker backed by a buffered channel per
// queue. Order state is process-lifetime, so status notifications never need
// to leave the process; this keeps the worker wiring without an external
// broker.
type MemoryBroker struct {
	mu     sync.Mutex
	queues map[string]chan []byte
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		queues: make(map[string]chan []byte),
		done:   make(chan struct{}),
	}
}

func (b *MemoryBroker) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

func (b *MemoryBroker) queue(queueName string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.queues[queueName]
	if !ok {
		ch = make(chan []byte, defaultBufferSize)
		b.queues[queueName] = ch
	}
	return ch
}

func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if b.closed() {
		return ErrBrokerClosed
	}

	select {
	case b.queue(queueName) <- message:
		return nil
	case <-b.done:
		return ErrBrokerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe starts a dispatch goroutine delivering messages to handler until
// the context is cancelled or the broker closes. A consumed message is not
// redelivered on handler error.
func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	if b.closed() {
		return ErrBrokerClosed
	}

	ch := b.queue(queueName)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.done:
				return
			case msg := <-ch:
				_ = handler(ctx, msg)
			}
		}
	}()

	return nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		return nil
	default:
		close(b.done)
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}
