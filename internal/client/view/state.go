package view

import (
	"slices"

	"github.com/iudanet/storekeeper/internal/models"
)

// State состояние одного экрана: полная коллекция, отфильтрованная проекция и номер страницы.
// Инвариант: filtered == Filter(all, category, query) после любого метода.
// Номер страницы сбрасывается в 1 при смене фильтров и при добавлении/удалении записей,
// но не при замене записи на месте.
//
// State не потокобезопасен: владелец (движок) сериализует доступ.
type State[T models.Entity[T]] struct {
	category string
	query    string
	all      []T
	filtered []T
	page     int
	pageSize int
}

// NewState создает пустое состояние с фильтром AllCategories
func NewState[T models.Entity[T]](pageSize int) *State[T] {
	return &State[T]{
		category: AllCategories,
		page:     1,
		pageSize: pageSize,
		all:      []T{},
		filtered: []T{},
	}
}

// All возвращает копию полной коллекции
func (s *State[T]) All() []T {
	return slices.Clone(s.all)
}

// Filtered возвращает копию отфильтрованной коллекции
func (s *State[T]) Filtered() []T {
	return slices.Clone(s.filtered)
}

// Visible возвращает текущую страницу
func (s *State[T]) Visible() []T {
	return Paginate(s.filtered, s.page, s.pageSize)
}

func (s *State[T]) Page() int        { return s.page }
func (s *State[T]) PageSize() int    { return s.pageSize }
func (s *State[T]) Query() string    { return s.query }
func (s *State[T]) Category() string { return s.category }

// PageCount количество страниц отфильтрованной коллекции
func (s *State[T]) PageCount() int {
	return PageCount(len(s.filtered), s.pageSize)
}

// SetQuery меняет строку поиска; при изменении страница сбрасывается
func (s *State[T]) SetQuery(query string) {
	if query == s.query {
		return
	}
	s.query = query
	s.refilter()
	s.page = 1
}

// SetCategory меняет фильтр категории; при изменении страница сбрасывается
func (s *State[T]) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	if category == s.category {
		return
	}
	s.category = category
	s.refilter()
	s.page = 1
}

// SetPage выбирает страницу без ограничения диапазона
func (s *State[T]) SetPage(page int) {
	s.page = page
}

// IndexOf возвращает позицию записи в полной коллекции или -1
func (s *State[T]) IndexOf(id string) int {
	return slices.IndexFunc(s.all, func(e T) bool { return e.GetID() == id })
}

// Get возвращает запись по id
func (s *State[T]) Get(id string) (T, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return s.all[idx], true
}

// Insert добавляет запись в конец коллекции
func (s *State[T]) Insert(e T) {
	s.InsertAt(len(s.all), e)
}

// InsertAt вставляет запись на позицию idx (ограничивается границами коллекции)
func (s *State[T]) InsertAt(idx int, e T) {
	idx = max(0, min(idx, len(s.all)))
	s.all = slices.Insert(s.all, idx, e)
	s.refilter()
	s.page = 1
}

// Update заменяет запись с тем же id на месте. Возвращает false, если записи нет.
func (s *State[T]) Update(e T) bool {
	idx := s.IndexOf(e.GetID())
	if idx < 0 {
		return false
	}
	s.all[idx] = e
	s.refilter()
	return true
}

// Remove удаляет запись по id и возвращает ее снимок и прежнюю позицию
func (s *State[T]) Remove(id string) (T, int, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		var zero T
		return zero, -1, false
	}
	removed := s.all[idx]
	s.all = slices.Delete(s.all, idx, idx+1)
	s.refilter()
	s.page = 1
	return removed, idx, true
}

// ReplaceID меняет идентификатор записи на месте (временный id -> серверный)
func (s *State[T]) ReplaceID(oldID, newID string) bool {
	idx := s.IndexOf(oldID)
	if idx < 0 {
		return false
	}
	s.all[idx] = s.all[idx].WithID(newID)
	s.refilter()
	return true
}

// Replace подменяет коллекцию авторитетным снимком сервера.
// Записи с временными id, которых нет в снимке, сохраняются в конце:
// они ждут подтверждения создания. Страница сбрасывается только если
// изменился набор идентификаторов.
func (s *State[T]) Replace(snapshot []T) {
	next := make([]T, 0, len(snapshot)+1)
	next = append(next, snapshot...)

	for _, e := range s.all {
		if models.IsTempID(e.GetID()) && !containsID(snapshot, e.GetID()) {
			next = append(next, e)
		}
	}

	changed := !sameIDs(s.all, next)
	s.all = next
	s.refilter()
	if changed {
		s.page = 1
	}
}

func (s *State[T]) refilter() {
	s.filtered = Filter(s.all, s.category, s.query)
}

func containsID[T models.Entity[T]](items []T, id string) bool {
	return slices.IndexFunc(items, func(e T) bool { return e.GetID() == id }) >= 0
}

func sameIDs[T models.Entity[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].GetID() != b[i].GetID() {
			return false
		}
	}
	return true
}
