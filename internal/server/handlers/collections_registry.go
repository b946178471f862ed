package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/iudanet/storekeeper/internal/models"
	"github.com/iudanet/storekeeper/internal/validation"
)

// Sanitizer убирает разметку из текстовых полей документов
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text текст без тегов; сущности HTML раскодируются обратно
func (s *Sanitizer) Text(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

// Collection коллекция, которую обслуживает сервер
type Collection struct {
	// Prepare декодирует тело запроса, очищает и проверяет его и
	// возвращает документ для хранения с серверным id
	Prepare func(body []byte, id string) (json.RawMessage, error)
	Name    string
}

// errMalformedBody тело не разбирается как документ коллекции
type errMalformedBody struct {
	err error
}

func (e *errMalformedBody) Error() string {
	return "malformed document: " + e.err.Error()
}

func (e *errMalformedBody) Unwrap() error {
	return e.err
}

// document запись коллекции, которую сервер умеет очищать от разметки
type document[T any] interface {
	models.Entity[T]
	Sanitized(clean func(string) string) T
}

func entityCollection[T document[T]](name string, s *Sanitizer, validate func(T) error) Collection {
	return Collection{
		Name: name,
		Prepare: func(body []byte, id string) (json.RawMessage, error) {
			var entity T
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&entity); err != nil {
				return nil, &errMalformedBody{err: err}
			}

			entity = entity.Sanitized(s.Text).WithID(id)
			if err := validate(entity); err != nil {
				return nil, err
			}

			doc, err := json.Marshal(entity)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s document: %w", name, err)
			}
			return doc, nil
		},
	}
}

// DefaultCollections коллекции магазина
func DefaultCollections(s *Sanitizer) map[string]Collection {
	list := []Collection{
		entityCollection(models.CollectionProducts, s, validation.ValidateProduct),
		entityCollection(models.CollectionCategories, s, validation.ValidateCategory),
		entityCollection(models.CollectionBooks, s, validation.ValidateBook),
		entityCollection(models.CollectionChat, s, validation.ValidateChatMessage),
	}

	out := make(map[string]Collection, len(list))
	for _, c := range list {
		out[c.Name] = c
	}
	return out
}
