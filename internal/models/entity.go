package models

import (
	"strconv"
	"strings"
)

// Entity описывает запись управляемой коллекции (товар, категория, книга, сообщение чата).
// T - конкретный тип записи; методы работают по значению, поэтому сравнение
// двух записей через == сравнивает все поля.
type Entity[T any] interface {
	comparable

	// GetID возвращает серверный или временный идентификатор
	GetID() string

	// WithID возвращает копию записи с другим идентификатором
	WithID(id string) T

	// SearchFields возвращает поля, по которым работает текстовый поиск
	SearchFields() []string

	// CategoryName возвращает значение поля категории (пустая строка, если поля нет)
	CategoryName() string
}

// TempIDPrefix префикс временных идентификаторов, которые клиент назначает
// до подтверждения создания сервером.
const TempIDPrefix = "temp_"

// NewTempID формирует временный идентификатор из монотонной метки времени
func NewTempID(ts int64) string {
	return TempIDPrefix + strconv.FormatInt(ts, 10)
}

// IsTempID сообщает, является ли id временным
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Коллекции документного хранилища
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionBooks      = "books"
	CollectionChat       = "chat"
)

// Collections возвращает список всех коллекций в фиксированном порядке
func Collections() []string {
	return []string{CollectionProducts, CollectionCategories, CollectionBooks, CollectionChat}
}

// FormatPrice приводит цену к строке без лишних нулей (10 -> "10", 10.5 -> "10.5")
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
