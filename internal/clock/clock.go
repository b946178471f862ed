package clock

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock выдает монотонно возрастающие метки времени в миллисекундах.
// Каждая следующая метка не меньше текущего времени и строго больше предыдущей,
// поэтому метки годятся и как временные идентификаторы записей,
// и как ключи упорядочивания журнала чата.
type Clock struct {
	now    func() time.Time // источник физического времени
	nodeID string           // идентификатор процесса-клиента
	last   int64            // последняя выданная метка
	mu     sync.Mutex
}

// New создает часы на системном времени с уникальным идентификатором узла (UUID)
func New() *Clock {
	return &Clock{
		now:    time.Now,
		nodeID: uuid.New().String(),
	}
}

// NewWithSource создает часы с заданным источником времени.
// Используется в тестах для детерминированных меток.
func NewWithSource(nodeID string, now func() time.Time) *Clock {
	return &Clock{
		now:    now,
		nodeID: nodeID,
	}
}

// Tick возвращает новую метку: max(now, last+1)
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UnixMilli()
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts

	return ts
}

// Observe учитывает метку, полученную извне (например, из сохраненного журнала),
// чтобы следующие метки были строго больше нее.
func (c *Clock) Observe(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ts > c.last {
		c.last = ts
	}
}

// NodeID возвращает идентификатор узла
func (c *Clock) NodeID() string {
	return c.nodeID
}
