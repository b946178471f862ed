package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/clock"
	"github.com/iudanet/storekeeper/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memCategories CategoriesMock поверх слайса
func memCategories(initial ...models.Category) *CategoriesMock {
	items := slices.Clone(initial)
	m := &CategoriesMock{}
	m.AllFunc = func() []models.Category {
		return slices.Clone(items)
	}
	m.ApplyDirectFunc = func(ctx context.Context, mut models.Mutation[models.Category]) (string, error) {
		switch mut.Kind {
		case models.MutationCreate:
			id := "c" + mut.Entity.Name
			items = append(items, mut.Entity.WithID(id))
			return id, nil
		case models.MutationUpdate:
			for i := range items {
				if items[i].ID == mut.ID {
					items[i] = mut.Entity.WithID(mut.ID)
				}
			}
		case models.MutationDelete:
			items = slices.DeleteFunc(items, func(c models.Category) bool { return c.ID == mut.ID })
		}
		return mut.ID, nil
	}
	return m
}

// scripted классификатор с заранее заданными ответами по тексту
func scripted(answers map[string]Intent) *ClassifierMock {
	return &ClassifierMock{
		ClassifyFunc: func(ctx context.Context, utterance string) Intent {
			if in, ok := answers[utterance]; ok {
				return in
			}
			return Intent{Name: IntentUnknown}
		},
	}
}

func newController(cl Classifier, cats Categories) *Controller {
	tr := NewTranscript(clock.NewWithSource("test", func() time.Time { return time.UnixMilli(1000) }), nil, testLogger())
	return NewController(cl, cats, tr, testLogger())
}

func sampleCategories() []models.Category {
	return []models.Category{
		{ID: "c1", Name: "Plumbing", Description: "Pipes and fittings"},
		{ID: "c2", Name: "Electrical", Description: "Wires and switches"},
	}
}

func texts(msgs []models.ChatMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func TestResolveSelection(t *testing.T) {
	candidates := sampleCategories()

	tests := []struct {
		input  string
		wantID string
		found  bool
	}{
		{input: "1", wantID: "c1", found: true},
		{input: "plumbing", wantID: "c1", found: true},
		{input: "  PLUMBING ", wantID: "c1", found: true},
		{input: "2.", wantID: "c2", found: true},
		{input: "Electrical", wantID: "c2", found: true},
		{input: "0"},
		{input: "3"},
		{input: "-1"},
		{input: "plumb"},
		{input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, found := ResolveSelection(candidates, tt.input)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestResolveSelection_NumericNames(t *testing.T) {
	tests := []struct {
		name       string
		candidates []models.Category
		input      string
		wantID     string
		found      bool
	}{
		{
			name:       "name beyond list length",
			candidates: []models.Category{{ID: "c1", Name: "Plumbing"}, {ID: "c2", Name: "2024"}},
			input:      "2024",
			wantID:     "c2",
			found:      true,
		},
		{
			name:       "index still works",
			candidates: []models.Category{{ID: "c1", Name: "Plumbing"}, {ID: "c2", Name: "2024"}},
			input:      "2",
			wantID:     "c2",
			found:      true,
		},
		{
			name:       "earlier name wins over later index",
			candidates: []models.Category{{ID: "c1", Name: "2"}, {ID: "c2", Name: "Plumbing"}},
			input:      "2",
			wantID:     "c1",
			found:      true,
		},
		{
			name:       "no match",
			candidates: []models.Category{{ID: "c1", Name: "Plumbing"}, {ID: "c2", Name: "2024"}},
			input:      "2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ResolveSelection(tt.candidates, tt.input)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

// По номеру и по имени выбирается одна и та же категория
func TestResolveSelection_IndexAndNameAgree(t *testing.T) {
	byIndex, ok := ResolveSelection(sampleCategories(), "1")
	require.True(t, ok)
	byName, ok := ResolveSelection(sampleCategories(), "plumbing")
	require.True(t, ok)
	assert.Equal(t, byIndex, byName)
}

func TestNumberedList(t *testing.T) {
	assert.Equal(t, "1. Plumbing: Pipes and fittings\n2. Electrical: Wires and switches", NumberedList(sampleCategories()))
	assert.Empty(t, NumberedList(nil))
}

func TestController_DeleteViaSelection(t *testing.T) {
	for _, input := range []string{"1", "plumbing"} {
		t.Run(input, func(t *testing.T) {
			cats := memCategories(sampleCategories()...)
			cl := scripted(map[string]Intent{
				"delete a category": {Name: IntentDelete},
			})
			c := newController(cl, cats)
			ctx := context.Background()

			replies := c.Handle(ctx, "delete a category")
			require.Len(t, replies, 1)
			assert.Contains(t, replies[0].Text, "1. Plumbing")
			st, ok := c.State().(AwaitingSelection)
			require.True(t, ok)
			assert.Equal(t, IntentDelete, st.Kind)

			replies = c.Handle(ctx, input)
			assert.Equal(t, []string{`Category "Plumbing" deleted.`}, texts(replies))
			assert.Equal(t, Idle{}, c.State())

			// выбор разобран локально, классификатор вызван один раз
			assert.Len(t, cl.ClassifyCalls(), 1)
			require.Len(t, cats.ApplyDirectCalls(), 1)
			assert.Equal(t, models.MutationDelete, cats.ApplyDirectCalls()[0].M.Kind)
			assert.Equal(t, "c1", cats.ApplyDirectCalls()[0].M.ID)
		})
	}
}

func TestController_UpdateFlow(t *testing.T) {
	cats := memCategories(sampleCategories()...)
	cl := scripted(map[string]Intent{
		"update a category": {Name: IntentUpdate},
		"name Electricity, description Cables": {
			Name: IntentUpdateData,
			Data: &IntentData{Name: "Electricity", Description: "Cables"},
		},
		"only a name": {Name: IntentUpdateData, Data: &IntentData{Name: "X"}},
	})
	c := newController(cl, cats)
	ctx := context.Background()

	c.Handle(ctx, "update a category")
	assert.IsType(t, AwaitingSelection{}, c.State())

	replies := c.Handle(ctx, "2")
	assert.Equal(t, []string{`You selected "Electrical". Provide the new name and description.`}, texts(replies))
	assert.Equal(t, AwaitingNewData{TargetID: "c2", TargetName: "Electrical"}, c.State())

	replies = c.Handle(ctx, "only a name")
	assert.Equal(t, []string{MsgIncompleteUpdate}, texts(replies))
	assert.IsType(t, AwaitingNewData{}, c.State())

	replies = c.Handle(ctx, "name Electricity, description Cables")
	assert.Equal(t, []string{MsgUpdated}, texts(replies))
	assert.Equal(t, Idle{}, c.State())

	all := cats.All()
	assert.Equal(t, models.Category{ID: "c2", Name: "Electricity", Description: "Cables"}, all[1])
}

func TestController_UpdateWithSelectionInMessage(t *testing.T) {
	cats := memCategories(sampleCategories()...)
	cl := scripted(map[string]Intent{
		"rename plumbing":  {Name: IntentUpdate, Selection: "plumbing"},
		"rename carpentry": {Name: IntentUpdate, Selection: "carpentry"},
	})
	c := newController(cl, cats)

	replies := c.Handle(context.Background(), "rename carpentry")
	assert.Equal(t, []string{MsgNotFound}, texts(replies))
	assert.Equal(t, Idle{}, c.State())

	c.Handle(context.Background(), "rename plumbing")
	assert.Equal(t, AwaitingNewData{TargetID: "c1", TargetName: "Plumbing"}, c.State())
}

func TestController_SelectIntent(t *testing.T) {
	cats := memCategories(sampleCategories()...)
	cl := scripted(map[string]Intent{
		"delete":              {Name: IntentDelete},
		"the electrical one":  {Name: IntentSelect, Selection: "Electrical"},
		"the carpentry one":   {Name: IntentSelect, Selection: "Carpentry"},
		"pick the second one": {Name: IntentSelect},
	})
	c := newController(cl, cats)
	ctx := context.Background()

	// без незавершенной операции выбирать нечего
	assert.Equal(t, []string{MsgNothingSelected}, texts(c.Handle(ctx, "the electrical one")))

	c.Handle(ctx, "delete")
	assert.Equal(t, []string{MsgInvalidSelection}, texts(c.Handle(ctx, "the carpentry one")))
	assert.IsType(t, AwaitingSelection{}, c.State(), "failed lookup keeps state")

	assert.Equal(t, []string{MsgInvalidSelection}, texts(c.Handle(ctx, "pick the second one")))

	assert.Equal(t, []string{`Category "Electrical" deleted.`}, texts(c.Handle(ctx, "the electrical one")))
	assert.Equal(t, Idle{}, c.State())
}

func TestController_Create(t *testing.T) {
	cats := memCategories()
	cl := scripted(map[string]Intent{
		"add tools":     {Name: IntentCreate, Data: &IntentData{Name: "Tools", Description: "Hand tools"}},
		"add something": {Name: IntentCreate, Data: &IntentData{Name: "Tools"}},
		"add nothing":   {Name: IntentCreate},
	})
	c := newController(cl, cats)
	ctx := context.Background()

	assert.Equal(t, []string{`Category "Tools" created successfully.`}, texts(c.Handle(ctx, "add tools")))
	assert.Equal(t, []string{MsgMissingCreateData}, texts(c.Handle(ctx, "add something")))
	assert.Equal(t, []string{MsgMissingCreateData}, texts(c.Handle(ctx, "add nothing")))

	require.Len(t, cats.ApplyDirectCalls(), 1)
	assert.Equal(t, models.MutationCreate, cats.ApplyDirectCalls()[0].M.Kind)
}

func TestController_List(t *testing.T) {
	cl := scripted(map[string]Intent{"list": {Name: IntentList}})

	c := newController(cl, memCategories())
	assert.Equal(t, []string{MsgNoCategories}, texts(c.Handle(context.Background(), "list")))

	c = newController(cl, memCategories(sampleCategories()...))
	replies := c.Handle(context.Background(), "list")
	require.Len(t, replies, 1)
	assert.Equal(t, "Available categories:\n"+NumberedList(sampleCategories()), replies[0].Text)
}

func TestController_NoCategoriesClearsState(t *testing.T) {
	cats := memCategories(sampleCategories()...)
	cl := scripted(map[string]Intent{
		"update": {Name: IntentUpdate},
		"delete": {Name: IntentDelete},
	})
	c := newController(cl, cats)
	ctx := context.Background()

	c.Handle(ctx, "update")
	require.IsType(t, AwaitingSelection{}, c.State())

	// коллекция опустела
	cats.AllFunc = func() []models.Category { return nil }
	assert.Equal(t, []string{MsgNothingToDelete}, texts(c.Handle(ctx, "delete")))
	assert.Equal(t, Idle{}, c.State())
}

func TestController_UnknownKeepsState(t *testing.T) {
	cats := memCategories(sampleCategories()...)
	cl := scripted(map[string]Intent{"delete": {Name: IntentDelete}})
	c := newController(cl, cats)
	ctx := context.Background()

	c.Handle(ctx, "delete")
	before := c.State()

	assert.Equal(t, []string{MsgUnknown}, texts(c.Handle(ctx, "what is the weather")))
	assert.Equal(t, before, c.State())
}

func TestController_ClassifierErrorBecomesMessage(t *testing.T) {
	cl := scripted(map[string]Intent{
		"hello":  {Name: IntentError, Message: msgRateLimited},
		"hello2": {Name: IntentError},
	})
	c := newController(cl, memCategories())

	assert.Equal(t, []string{msgRateLimited}, texts(c.Handle(context.Background(), "hello")))
	assert.Equal(t, []string{msgUnreachable}, texts(c.Handle(context.Background(), "hello2")))
}

func TestController_RemoteFailure(t *testing.T) {
	cats := memCategories(sampleCategories()...)
	cats.ApplyDirectFunc = func(ctx context.Context, m models.Mutation[models.Category]) (string, error) {
		return "", errors.New("permission denied")
	}
	cl := scripted(map[string]Intent{"delete": {Name: IntentDelete}})
	c := newController(cl, cats)
	ctx := context.Background()

	c.Handle(ctx, "delete")
	replies := c.Handle(ctx, "1")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, MsgFailed)
	assert.Contains(t, replies[0].Text, "permission denied")
	assert.IsType(t, AwaitingSelection{}, c.State())
}

func TestController_TranscriptOrder(t *testing.T) {
	cl := scripted(map[string]Intent{"list": {Name: IntentList}})
	c := newController(cl, memCategories(sampleCategories()...))
	ctx := context.Background()

	c.Handle(ctx, "list")
	c.Handle(ctx, "   ")
	c.Handle(ctx, "gibberish")

	msgs := c.Transcript().Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{models.SenderUser, models.SenderSystem, models.SenderUser, models.SenderSystem},
		[]string{msgs[0].Sender, msgs[1].Sender, msgs[2].Sender, msgs[3].Sender})
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].Timestamp, msgs[i-1].Timestamp)
	}
}

func TestController_Reset(t *testing.T) {
	cl := scripted(map[string]Intent{"delete": {Name: IntentDelete}})
	c := newController(cl, memCategories(sampleCategories()...))

	c.Handle(context.Background(), "delete")
	c.Reset()
	assert.Equal(t, Idle{}, c.State())
	assert.Equal(t, "idle", c.State().String())
}
