package data

import (
	"context"

	"github.com/iudanet/storekeeper/internal/client/optimistic"
	"github.com/iudanet/storekeeper/internal/models"
)

//go:generate moq -out mutator_mock.go . Mutator

// Mutator оптимистичная запись в коллекцию (optimistic.Engine)
type Mutator[T any] interface {
	Apply(ctx context.Context, m models.Mutation[T]) (*optimistic.Result, error)
}

// SaveProduct проверяет форму и отправляет товар в движок: id == "" - создание, иначе обновление.
// Невалидная форма не создает мутацию.
func SaveProduct(ctx context.Context, eng Mutator[models.Product], id string, in ProductInput) (*optimistic.Result, error) {
	p, err := in.Build(id)
	if err != nil {
		return nil, err
	}
	return eng.Apply(ctx, mutationFor(id, p))
}

// SaveCategory проверяет форму и отправляет категорию в движок
func SaveCategory(ctx context.Context, eng Mutator[models.Category], id string, in CategoryInput) (*optimistic.Result, error) {
	c, err := in.Build(id)
	if err != nil {
		return nil, err
	}
	return eng.Apply(ctx, mutationFor(id, c))
}

func mutationFor[T any](id string, entity T) models.Mutation[T] {
	if id == "" {
		return models.Create(entity)
	}
	return models.Update(id, entity)
}
