package storage

import (
	"context"
	"encoding/json"
)

//go:generate moq -out pending_mock.go . PendingStorage

// PendingStorage буфер мутаций, примененных без связи с сервером.
// Буфер только накапливается и просматривается: при восстановлении связи он не воспроизводится.
type PendingStorage interface {
	// AddPending добавляет мутацию в конец буфера
	AddPending(ctx context.Context, m *PendingMutation) error

	// ListPending возвращает мутации коллекции в порядке добавления ("" - все коллекции)
	ListPending(ctx context.Context, collection string) ([]*PendingMutation, error)

	// CountPending возвращает размер буфера
	CountPending(ctx context.Context) (int, error)

	// ClearPending удаляет мутации коллекции ("" - все) и возвращает их количество
	ClearPending(ctx context.Context, collection string) (int, error)
}

// PendingMutation запись offline буфера
type PendingMutation struct {
	Collection string          `json:"collection"`
	Kind       string          `json:"kind"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Timestamp  int64           `json:"timestamp"`
	Seq        uint64          `json:"seq"`
}
