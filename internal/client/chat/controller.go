package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/iudanet/storekeeper/internal/models"
	"github.com/iudanet/storekeeper/internal/validation"
)

// Ответы контроллера
const (
	MsgNoCategories       = "There are no categories registered."
	MsgNothingToDelete    = "There are no categories to delete."
	MsgNothingToUpdate    = "There are no categories to update."
	MsgMissingCreateData  = "A name and a description are required to create a category."
	MsgIncompleteUpdate   = "A new name and description are required to update the category."
	MsgNotFound           = "Category not found."
	MsgInvalidSelection   = "Invalid selection."
	MsgNothingSelected    = "There is no pending operation; ask to update or delete a category first."
	MsgSelectBeforeUpdate = "Select the category to update first."
	MsgUnknown            = "I did not understand your intention. Please try again."
	MsgFailed             = "An error occurred while processing your message"
	MsgUpdated            = "Category updated successfully."
)

//go:generate moq -out categories_mock.go . Categories

// Categories коллекция категорий: текущий снимок и запись без оптимистичного
// применения (optimistic.Engine[models.Category])
type Categories interface {
	All() []models.Category
	ApplyDirect(ctx context.Context, m models.Mutation[models.Category]) (string, error)
}

// Controller превращает сообщения чата в операции над категориями
type Controller struct {
	classifier Classifier
	categories Categories
	transcript *Transcript
	logger     *slog.Logger
	state      State
	mu         sync.Mutex
}

// NewController создает контроллер в состоянии Idle
func NewController(classifier Classifier, categories Categories, transcript *Transcript, logger *slog.Logger) *Controller {
	return &Controller{
		classifier: classifier,
		categories: categories,
		transcript: transcript,
		logger:     logger,
		state:      Idle{},
	}
}

// State текущее состояние диалога
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset отменяет незавершенную операцию
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle{}
}

// Transcript журнал сообщений
func (c *Controller) Transcript() *Transcript {
	return c.transcript
}

// Handle обрабатывает сообщение пользователя и возвращает ответы системы.
// Сообщения вызовов сериализуются: следующее обрабатывается после предыдущего.
func (c *Controller) Handle(ctx context.Context, text string) []models.ChatMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.transcript.Append(ctx, models.SenderUser, text)

	var replies []string
	reply := func(format string, args ...any) {
		replies = append(replies, fmt.Sprintf(format, args...))
	}

	c.step(ctx, text, reply)

	out := make([]models.ChatMessage, 0, len(replies))
	for _, r := range replies {
		out = append(out, c.transcript.Append(ctx, models.SenderSystem, r))
	}
	return out
}

func (c *Controller) step(ctx context.Context, text string, reply func(string, ...any)) {
	// ответ на показанный список разбирается без классификатора
	if st, ok := c.state.(AwaitingSelection); ok {
		if target, found := ResolveSelection(st.Candidates, text); found {
			c.selected(ctx, st.Kind, target, reply)
			return
		}
	}

	intent := c.classifier.Classify(ctx, text)
	c.logger.Debug("Intent classified", "intent", intent.Name, "state", c.state.String())

	switch intent.Name {
	case IntentError:
		msg := intent.Message
		if msg == "" {
			msg = msgUnreachable
		}
		reply("%s", msg)

	case IntentList:
		c.list(reply)

	case IntentCreate:
		if st, ok := c.state.(AwaitingNewData); ok && intent.Data.Complete() {
			c.update(ctx, st, intent.Data, reply)
			return
		}
		c.create(ctx, intent.Data, reply)

	case IntentDelete, IntentUpdate:
		c.begin(ctx, intent, reply)

	case IntentSelect:
		st, ok := c.state.(AwaitingSelection)
		if !ok {
			reply(MsgNothingSelected)
			return
		}
		selection := intent.Selection
		if selection == "" {
			selection = text
		}
		target, found := ResolveSelection(st.Candidates, selection)
		if !found {
			reply(MsgInvalidSelection)
			return
		}
		c.selected(ctx, st.Kind, target, reply)

	case IntentUpdateData:
		st, ok := c.state.(AwaitingNewData)
		if !ok {
			reply(MsgSelectBeforeUpdate)
			return
		}
		c.update(ctx, st, intent.Data, reply)

	default:
		reply(MsgUnknown)
	}
}

func (c *Controller) list(reply func(string, ...any)) {
	all := c.categories.All()
	if len(all) == 0 {
		reply(MsgNoCategories)
		return
	}
	reply("Available categories:\n%s", NumberedList(all))
}

func (c *Controller) create(ctx context.Context, data *IntentData, reply func(string, ...any)) {
	if !data.Complete() {
		reply(MsgMissingCreateData)
		return
	}

	cat := models.Category{Name: data.Name, Description: data.Description}
	if err := validation.ValidateCategory(cat); err != nil {
		reply("%s", err.Error())
		return
	}

	id, err := c.categories.ApplyDirect(ctx, models.Create(cat))
	if err != nil {
		c.logger.Error("Chat create failed", "name", cat.Name, "error", err)
		reply("%s: %v", MsgFailed, err)
		return
	}

	c.logger.Info("Category created from chat", "id", id, "name", cat.Name)
	reply("Category %q created successfully.", cat.Name)
}

// begin обрабатывает "удалить"/"изменить": с выбором в том же сообщении
// или через нумерованный список.
func (c *Controller) begin(ctx context.Context, intent Intent, reply func(string, ...any)) {
	all := c.categories.All()
	if len(all) == 0 {
		if intent.Name == IntentDelete {
			reply(MsgNothingToDelete)
		} else {
			reply(MsgNothingToUpdate)
		}
		c.state = Idle{}
		return
	}

	if intent.Selection != "" {
		target, found := ResolveSelection(all, intent.Selection)
		if !found {
			reply(MsgNotFound)
			return
		}
		c.selected(ctx, intent.Name, target, reply)
		return
	}

	c.state = AwaitingSelection{Kind: intent.Name, Candidates: all}
	if intent.Name == IntentDelete {
		reply("Select a category to delete:\n%s", NumberedList(all))
	} else {
		reply("Select a category to update:\n%s", NumberedList(all))
	}
}

func (c *Controller) selected(ctx context.Context, kind IntentName, target models.Category, reply func(string, ...any)) {
	if kind == IntentUpdate {
		c.state = AwaitingNewData{TargetID: target.ID, TargetName: target.Name}
		reply("You selected %q. Provide the new name and description.", target.Name)
		return
	}

	if _, err := c.categories.ApplyDirect(ctx, models.Delete[models.Category](target.ID)); err != nil {
		c.logger.Error("Chat delete failed", "id", target.ID, "error", err)
		reply("%s: %v", MsgFailed, err)
		return
	}

	c.logger.Info("Category deleted from chat", "id", target.ID, "name", target.Name)
	c.state = Idle{}
	reply("Category %q deleted.", target.Name)
}

func (c *Controller) update(ctx context.Context, st AwaitingNewData, data *IntentData, reply func(string, ...any)) {
	if !data.Complete() {
		reply(MsgIncompleteUpdate)
		return
	}

	cat := models.Category{ID: st.TargetID, Name: data.Name, Description: data.Description}
	if err := validation.ValidateCategory(cat); err != nil {
		reply("%s", err.Error())
		return
	}

	if _, err := c.categories.ApplyDirect(ctx, models.Update(st.TargetID, cat)); err != nil {
		c.logger.Error("Chat update failed", "id", st.TargetID, "error", err)
		reply("%s: %v", MsgFailed, err)
		return
	}

	c.logger.Info("Category updated from chat", "id", st.TargetID, "name", cat.Name)
	c.state = Idle{}
	reply(MsgUpdated)
}

// ResolveSelection ищет категорию по номеру в списке (с 1) или по имени без учета регистра
func ResolveSelection(candidates []models.Category, input string) (models.Category, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.Category{}, false
	}

	n, err := strconv.Atoi(strings.TrimSuffix(input, "."))
	byIndex := err == nil

	// первая категория, совпавшая по имени или по номеру: имя может само быть числом
	for i, cat := range candidates {
		if strings.EqualFold(cat.Name, input) || (byIndex && n == i+1) {
			return cat, true
		}
	}
	return models.Category{}, false
}

// NumberedList "1. Name: Description" по строке на категорию
func NumberedList(categories []models.Category) string {
	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s: %s", i+1, cat.Name, cat.Description)
	}
	return b.String()
}
