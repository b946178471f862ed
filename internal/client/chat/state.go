package chat

import (
	"fmt"

	"github.com/iudanet/storekeeper/internal/models"
)

// State состояние диалога: Idle, AwaitingSelection или AwaitingNewData
type State interface {
	fmt.Stringer
	isState()
}

// Idle нет незавершенной операции
type Idle struct{}

// AwaitingSelection показан нумерованный список, ждем выбор категории
type AwaitingSelection struct {
	Kind       IntentName // IntentUpdate или IntentDelete
	Candidates []models.Category
}

// AwaitingNewData категория для обновления выбрана, ждем новые данные
type AwaitingNewData struct {
	TargetID   string
	TargetName string
}

func (Idle) isState()              {}
func (AwaitingSelection) isState() {}
func (AwaitingNewData) isState()   {}

func (Idle) String() string {
	return "idle"
}

func (s AwaitingSelection) String() string {
	return fmt.Sprintf("awaiting selection (%s)", s.Kind)
}

func (s AwaitingNewData) String() string {
	return fmt.Sprintf("awaiting new data for %q", s.TargetName)
}
