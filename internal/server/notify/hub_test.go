package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestHub_Notify(t *testing.T) {
	hub := NewHub()

	products := hub.Changed("products")
	again := hub.Changed("products")
	categories := hub.Changed("categories")

	assert.False(t, closed(products))

	require.NoError(t, hub.Publish(context.Background(), "products"))
	assert.True(t, closed(products))
	assert.True(t, closed(again), "all waiters share one channel")
	assert.False(t, closed(categories))

	// следующее ожидание получает новый канал
	next := hub.Changed("products")
	assert.False(t, closed(next))
}

func TestHub_NotifyWithoutWaiters(t *testing.T) {
	hub := NewHub()
	hub.Notify("books")

	assert.False(t, closed(hub.Changed("books")), "changes before Changed are not remembered")
}

func TestHub_WakesGoroutine(t *testing.T) {
	hub := NewHub()
	ch := hub.Changed("chat")

	done := make(chan struct{})
	go func() {
		<-ch
		close(done)
	}()

	hub.Notify("chat")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken")
	}
}
