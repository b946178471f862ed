package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Document запись коллекции: JSON тело и служебные поля сервера
type Document struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Collection string
	ID         string
	Body       json.RawMessage
	Seq        int64 // порядок создания внутри коллекции
}

// DocumentStorage хранилище коллекций документов.
// Каждое изменение коллекции увеличивает ее ревизию на 1, ревизия пустой
// (никогда не изменявшейся) коллекции равна 0.
type DocumentStorage interface {
	// List возвращает документы в порядке создания вместе с текущей ревизией
	List(ctx context.Context, collection string) ([]*Document, int64, error)

	// Get возвращает один документ или ErrEntryNotFound
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Create добавляет документ; ErrEntryExists при повторе id
	Create(ctx context.Context, doc *Document) (int64, error)

	// Update заменяет тело документа; ErrEntryNotFound, если его нет
	Update(ctx context.Context, doc *Document) (int64, error)

	// Delete удаляет документ; ErrEntryNotFound, если его нет
	Delete(ctx context.Context, collection, id string) (int64, error)

	// Revision текущая ревизия коллекции
	Revision(ctx context.Context, collection string) (int64, error)
}
