package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

//go:generate moq -out prober_mock.go . Prober

// Prober проверяет доступность сервера (обычно GET /api/v1/health)
type Prober interface {
	Ping(ctx context.Context) error
}

// Event переход между состояниями online/offline
type Event struct {
	At      time.Time
	Offline bool
}

// State общий для всего клиента признак offline.
// Читать может кто угодно, менять - только Monitor при обработке перехода.
type State struct {
	offline atomic.Bool
}

// NewState создает состояние с начальным значением
func NewState(offline bool) *State {
	s := &State{}
	s.offline.Store(offline)
	return s
}

// Offline сообщает текущее состояние связи
func (s *State) Offline() bool {
	return s.offline.Load()
}

// swap устанавливает значение и сообщает, был ли это переход
func (s *State) swap(offline bool) bool {
	return s.offline.Swap(offline) != offline
}

// Monitor периодически опрашивает сервер и обновляет State.
// При принудительном offline режиме сервер не опрашивается вовсе.
type Monitor struct {
	prober    Prober
	state     *State
	logger    *slog.Logger
	listeners []func(Event)
	interval  time.Duration
	timeout   time.Duration
	forced    bool
	mu        sync.Mutex
}

// NewMonitor создает монитор связи.
// forceOffline переводит клиент в offline режим без опроса сервера.
func NewMonitor(state *State, prober Prober, interval time.Duration, forceOffline bool, logger *slog.Logger) *Monitor {
	if forceOffline {
		state.swap(true)
	}

	return &Monitor{
		prober:   prober,
		state:    state,
		logger:   logger,
		interval: interval,
		timeout:  3 * time.Second,
		forced:   forceOffline,
	}
}

// OnChange регистрирует обработчик перехода
func (m *Monitor) OnChange(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// State возвращает общий handle состояния
func (m *Monitor) State() *State {
	return m.state
}

// Check выполняет одну проверку и применяет переход. Возвращает текущее состояние offline.
func (m *Monitor) Check(ctx context.Context) bool {
	if m.forced {
		return true
	}

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.Ping(probeCtx)
	offline := err != nil

	if m.state.swap(offline) {
		if offline {
			m.logger.Warn("Server unreachable, switching to offline mode", "error", err)
		} else {
			m.logger.Info("Server reachable, switching to online mode")
		}
		m.emit(Event{Offline: offline, At: time.Now()})
	}

	return offline
}

// Run опрашивает сервер с интервалом до отмены контекста
func (m *Monitor) Run(ctx context.Context) {
	if m.forced {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) emit(ev Event) {
	m.mu.Lock()
	listeners := make([]func(Event), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
