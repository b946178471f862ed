package data

import (
	"strings"

	"github.com/iudanet/storekeeper/internal/models"
	"github.com/iudanet/storekeeper/internal/validation"
)

// ProductInput сырые значения формы товара (цена - строка, как ее ввел пользователь)
type ProductInput struct {
	Name     string
	Price    string
	Category string
	Image    string
}

// Build проверяет форму и собирает товар. Ошибка всегда *validation.Error.
func (in ProductInput) Build(id string) (models.Product, error) {
	price, err := validation.ParsePrice(in.Price)
	if err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Price:    price,
		Category: strings.TrimSpace(in.Category),
		Image:    strings.TrimSpace(in.Image),
	}
	if err := validation.ValidateProduct(p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// ProductInputFrom заполняет форму текущими значениями товара (редактирование)
func ProductInputFrom(p models.Product) ProductInput {
	return ProductInput{
		Name:     p.Name,
		Price:    models.FormatPrice(p.Price),
		Category: p.Category,
		Image:    p.Image,
	}
}

// CategoryInput форма категории
type CategoryInput struct {
	Name        string
	Description string
}

// Build проверяет форму и собирает категорию
func (in CategoryInput) Build(id string) (models.Category, error) {
	c := models.Category{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := validation.ValidateCategory(c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// BookInput форма книги без файла
type BookInput struct {
	Name   string
	Author string
	Genre  string
}

// Build проверяет форму и собирает книгу
func (in BookInput) Build(id, pdfURL string) (models.Book, error) {
	b := models.Book{
		ID:     id,
		Name:   strings.TrimSpace(in.Name),
		Author: strings.TrimSpace(in.Author),
		Genre:  strings.TrimSpace(in.Genre),
		PDFURL: pdfURL,
	}
	if err := validation.ValidateBook(b); err != nil {
		return models.Book{}, err
	}
	return b, nil
}
