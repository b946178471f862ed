// Package chat управляет категориями через свободный текст: внешний классификатор
// определяет намерение, контроллер выполняет операцию и ведет журнал сообщений.
package chat

import "context"

// IntentName намерение пользователя
type IntentName string

const (
	IntentCreate     IntentName = "crear"
	IntentList       IntentName = "listar"
	IntentUpdate     IntentName = "actualizar"
	IntentDelete     IntentName = "eliminar"
	IntentSelect     IntentName = "seleccionar_categoria"
	IntentUpdateData IntentName = "actualizar_datos"
	IntentUnknown    IntentName = "desconocida"
	IntentError      IntentName = "error"
)

// IntentNames все допустимые намерения
func IntentNames() []IntentName {
	return []IntentName{
		IntentCreate, IntentList, IntentUpdate, IntentDelete,
		IntentSelect, IntentUpdateData, IntentUnknown, IntentError,
	}
}

// IntentData данные категории, извлеченные из сообщения
type IntentData struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Complete сообщает, есть ли и имя, и описание
func (d *IntentData) Complete() bool {
	return d != nil && d.Name != "" && d.Description != ""
}

// Intent результат классификации
type Intent struct {
	Data      *IntentData `json:"data,omitempty"`
	Name      IntentName  `json:"intent"`
	Selection string      `json:"selection,omitempty"`
	Message   string      `json:"message,omitempty"`
}

//go:generate moq -out classifier_mock.go . Classifier

// Classifier определяет намерение по тексту пользователя.
// Ошибки классификатора не возвращаются: они превращаются в Intent с Name == IntentError.
type Classifier interface {
	Classify(ctx context.Context, utterance string) Intent
}
