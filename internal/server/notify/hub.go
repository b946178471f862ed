// Package notify оповещает ожидающие long-poll запросы об изменениях коллекций.
package notify

import (
	"context"
	"sync"
)

// Notifier публикует и ожидает изменения коллекций
type Notifier interface {
	// Publish сообщает, что коллекция изменилась
	Publish(ctx context.Context, collection string) error

	// Changed возвращает канал, который закроется при следующем изменении коллекции.
	// Канал нужно получить до чтения ревизии, иначе изменение между ними будет пропущено.
	Changed(collection string) <-chan struct{}
}

var (
	_ Notifier = (*Hub)(nil)
	_ Notifier = (*Redis)(nil)
)

// Hub оповещения в пределах одного процесса
type Hub struct {
	waiters map[string]chan struct{}
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{waiters: make(map[string]chan struct{})}
}

func (h *Hub) Changed(collection string) <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.waiters[collection]
	if !ok {
		ch = make(chan struct{})
		h.waiters[collection] = ch
	}
	return ch
}

// Notify будит всех, кто ждет коллекцию
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.waiters[collection]; ok {
		close(ch)
		delete(h.waiters, collection)
	}
}

func (h *Hub) Publish(_ context.Context, collection string) error {
	h.Notify(collection)
	return nil
}
