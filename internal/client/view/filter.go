package view

import (
	"strings"

	"github.com/iudanet/storekeeper/internal/models"
)

// AllCategories значение фильтра категории, пропускающее все записи
const AllCategories = "All"

// Matches проверяет запись по обоим фильтрам (логическое И).
// Категория сравнивается точно и с учетом регистра, пустая строка и AllCategories
// пропускают все. Запрос приводится к нижнему регистру и ищется подстрокой
// хотя бы в одном из полей поиска записи (логическое ИЛИ).
func Matches[T models.Entity[T]](e T, category, query string) bool {
	if category != "" && category != AllCategories && e.CategoryName() != category {
		return false
	}

	if query == "" {
		return true
	}

	q := strings.ToLower(query)
	for _, field := range e.SearchFields() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}

	return false
}

// Filter возвращает новый срез записей, прошедших фильтры, в исходном порядке
func Filter[T models.Entity[T]](all []T, category, query string) []T {
	filtered := make([]T, 0, len(all))
	for _, e := range all {
		if Matches(e, category, query) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Paginate возвращает страницу page (нумерация с 1) размера pageSize.
// Страницы вне диапазона дают пустой срез: без ограничения номера и без зацикливания.
func Paginate[T any](filtered []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []T{}
	}

	end := min(start+pageSize, len(filtered))

	out := make([]T, end-start)
	copy(out, filtered[start:end])
	return out
}

// Derive чистая функция: фильтрация и пагинация за один вызов
func Derive[T models.Entity[T]](all []T, category, query string, page, pageSize int) []T {
	return Paginate(Filter(all, category, query), page, pageSize)
}

// PageCount количество страниц для n записей (минимум 1, чтобы пустой список имел страницу)
func PageCount(n, pageSize int) int {
	if pageSize < 1 || n == 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
