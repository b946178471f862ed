package models

// MutationKind тип изменения коллекции
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// Mutation описывает одно изменение коллекции.
// Для create и update Entity содержит полное значение записи,
// для delete достаточно ID.
type Mutation[T any] struct {
	Entity    T            `json:"entity"`
	Kind      MutationKind `json:"kind"`
	ID        string       `json:"id,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// Create создает мутацию добавления записи
func Create[T any](entity T) Mutation[T] {
	return Mutation[T]{Kind: MutationCreate, Entity: entity}
}

// Update создает мутацию замены записи с указанным id
func Update[T any](id string, entity T) Mutation[T] {
	return Mutation[T]{Kind: MutationUpdate, ID: id, Entity: entity}
}

// Delete создает мутацию удаления записи
func Delete[T any](id string) Mutation[T] {
	return Mutation[T]{Kind: MutationDelete, ID: id}
}

// IsValid проверяет, что мутация имеет известный тип и нужные поля
func (m Mutation[T]) IsValid() bool {
	switch m.Kind {
	case MutationCreate:
		return true
	case MutationUpdate, MutationDelete:
		return m.ID != ""
	default:
		return false
	}
}
