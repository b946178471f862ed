package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iudanet/storekeeper/internal/models"
)

// MaxNameLen максимальная длина названий и имен
const MaxNameLen = 120

// Error ошибка валидации поля формы.
// Мутация с такой ошибкой не создается и до движка не доходит.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError проверяет, что err (или обернутая в нем ошибка) - ошибка валидации
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Message: "is required"}
	}
	if len(value) > MaxNameLen && field != "description" {
		return &Error{Field: field, Message: fmt.Sprintf("must not exceed %d characters", MaxNameLen)}
	}
	return nil
}

// ParsePrice разбирает цену из пользовательского ввода.
// Пустое значение, не число, отрицательное или нечисловое (NaN, Inf) - ошибка.
func ParsePrice(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, &Error{Field: "price", Message: "is required"}
	}

	price, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, &Error{Field: "price", Message: "must be a number"}
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &Error{Field: "price", Message: "must be a finite number"}
	}

	if price < 0 {
		return 0, &Error{Field: "price", Message: "must not be negative"}
	}

	return price, nil
}

// ValidateProduct проверяет товар перед отправкой в движок
func ValidateProduct(p models.Product) error {
	if err := required("name", p.Name); err != nil {
		return err
	}
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return &Error{Field: "price", Message: "must not be negative"}
	}
	if err := required("category", p.Category); err != nil {
		return err
	}
	return nil
}

// ValidateCategory требует заполнения всех полей категории
func ValidateCategory(c models.Category) error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	return required("description", c.Description)
}

// ValidateBook проверяет метаданные книги; наличие файла проверяет вызывающий код
func ValidateBook(b models.Book) error {
	if err := required("name", b.Name); err != nil {
		return err
	}
	if err := required("author", b.Author); err != nil {
		return err
	}
	return required("genre", b.Genre)
}

// ValidateChatMessage проверяет запись журнала чата
func ValidateChatMessage(m models.ChatMessage) error {
	if strings.TrimSpace(m.Text) == "" {
		return &Error{Field: "text", Message: "is required"}
	}
	if m.Sender != models.SenderUser && m.Sender != models.SenderSystem {
		return &Error{Field: "sender", Message: fmt.Sprintf("unknown sender %q", m.Sender)}
	}
	if m.Timestamp <= 0 {
		return &Error{Field: "timestamp", Message: "must be positive"}
	}
	return nil
}
