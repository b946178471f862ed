package optimistic

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/storekeeper/internal/client/storage"
	"github.com/iudanet/storekeeper/internal/models"
)

var (
	// ErrEntityNotFound обновление записи, которой нет в локальном состоянии
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvalidMutation неизвестный тип мутации или пустой id
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrClosed движок уже закрыт (экран уничтожен)
	ErrClosed = errors.New("engine is closed")
)

// MutationError ошибка удаленной части мутации
type MutationError struct {
	Err  error
	Kind models.MutationKind
	ID   string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("remote %s %s failed: %v", e.Kind, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

//go:generate moq -out remote_mock.go . Remote

// Remote удаленное хранилище одной коллекции
type Remote[T any] interface {
	// Create создает запись и возвращает ее серверный id
	Create(ctx context.Context, entity T) (string, error)
	// Update заменяет запись целиком
	Update(ctx context.Context, id string, entity T) error
	// Delete удаляет запись
	Delete(ctx context.Context, id string) error
}

// Subscriber живая подписка на коллекцию: onChange получает полный снимок
type Subscriber[T any] interface {
	Subscribe(ctx context.Context, onChange func([]T)) (func(), error)
}

//go:generate moq -out connectivity_mock.go . Connectivity

// Connectivity читает общий признак offline
type Connectivity interface {
	Offline() bool
}

//go:generate moq -out pending_mock.go . PendingRecorder

// PendingRecorder сохраняет мутации, сделанные offline.
// Буфер не воспроизводится при восстановлении связи.
type PendingRecorder interface {
	AddPending(ctx context.Context, m *storage.PendingMutation) error
}

// NoticeLevel уровень уведомления пользователя
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice видимое пользователю уведомление
type Notice struct {
	Err        error
	Level      NoticeLevel
	Collection string
	Message    string
}

//go:generate moq -out notifier_mock.go . Notifier

// Notifier показывает уведомления пользователю
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc адаптер функции к Notifier
type NotifierFunc func(n Notice)

// Notify вызывает f(n)
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}
