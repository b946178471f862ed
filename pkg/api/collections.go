package api

import "encoding/json"

// ListResponse снимок коллекции с номером ревизии
type ListResponse struct {
	Items    []json.RawMessage `json:"items"`    // записи коллекции в порядке создания
	Revision int64             `json:"revision"` // растет при каждом изменении коллекции
}

// CreateResponse ответ на создание записи
type CreateResponse struct {
	ID string `json:"id"` // серверный id (UUIDv7)
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // код ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
