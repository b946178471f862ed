package chat

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/iudanet/storekeeper/internal/clock"
	"github.com/iudanet/storekeeper/internal/models"
)

//go:generate moq -out store_mock.go . Store

// Store удаленная коллекция сообщений чата
type Store interface {
	Create(ctx context.Context, msg models.ChatMessage) (string, error)
}

// Transcript журнал чата: только добавление, порядок по метке времени.
// Сообщения сохраняются в коллекцию чата по возможности: ошибка сохранения
// логируется и не влияет на журнал.
type Transcript struct {
	store    Store
	clock    *clock.Clock
	logger   *slog.Logger
	messages []models.ChatMessage
	mu       sync.RWMutex
}

// NewTranscript создает пустой журнал. store может быть nil.
func NewTranscript(c *clock.Clock, store Store, logger *slog.Logger) *Transcript {
	if c == nil {
		c = clock.New()
	}
	return &Transcript{
		store:  store,
		clock:  c,
		logger: logger,
	}
}

// Load добавляет ранее сохраненную историю. Метки новых сообщений
// будут больше последней загруженной.
func (t *Transcript) Load(history []models.ChatMessage) {
	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b models.ChatMessage) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range sorted {
		if len(t.messages) > 0 && m.Timestamp <= t.messages[len(t.messages)-1].Timestamp {
			continue
		}
		t.messages = append(t.messages, m)
		t.clock.Observe(m.Timestamp)
	}
}

// Append добавляет сообщение с новой меткой времени и сохраняет его
func (t *Transcript) Append(ctx context.Context, sender, text string) models.ChatMessage {
	t.mu.Lock()
	ts := t.clock.Tick()
	msg := models.ChatMessage{
		ID:        "msg_" + strconv.FormatInt(ts, 10),
		Text:      text,
		Sender:    sender,
		Timestamp: ts,
	}
	t.messages = append(t.messages, msg)
	t.mu.Unlock()

	if t.store != nil {
		if _, err := t.store.Create(context.WithoutCancel(ctx), msg.WithID("")); err != nil {
			t.logger.Warn("Failed to persist chat message", "sender", sender, "error", err)
		}
	}

	return msg
}

// Messages копия журнала в порядке добавления
func (t *Transcript) Messages() []models.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.messages)
}

// Len количество сообщений
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
