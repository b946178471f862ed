package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	err    error
	text   string
	model  string
	config *genai.GenerateContentConfig
	calls  int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestGeminiClassifier_Classify(t *testing.T) {
	tests := []struct {
		err  error
		name string
		text string
		want Intent
	}{
		{
			name: "create with data",
			text: `{"intent":"crear","data":{"name":" Tools ","description":"Hand tools"}}`,
			want: Intent{Name: IntentCreate, Data: &IntentData{Name: "Tools", Description: "Hand tools"}},
		},
		{
			name: "numeric selection",
			text: `{"intent":"eliminar","selection":2}`,
			want: Intent{Name: IntentDelete, Selection: "2"},
		},
		{
			name: "string selection",
			text: `{"intent":"seleccionar_categoria","selection":"Plumbing"}`,
			want: Intent{Name: IntentSelect, Selection: "Plumbing"},
		},
		{
			name: "intent outside enum",
			text: `{"intent":"borrar_todo"}`,
			want: Intent{Name: IntentUnknown},
		},
		{
			name: "missing intent",
			text: `{"data":{"name":"x"}}`,
			want: Intent{Name: IntentUnknown},
		},
		{
			name: "not json",
			text: `I think you want to list`,
			want: Intent{Name: IntentUnknown},
		},
		{
			name: "empty",
			text: "",
			want: Intent{Name: IntentUnknown},
		},
		{
			name: "rate limited",
			err:  genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"},
			want: Intent{Name: IntentError, Message: msgRateLimited},
		},
		{
			name: "rate limited wrapped",
			err:  fmt.Errorf("generate: %w", genai.APIError{Code: 429}),
			want: Intent{Name: IntentError, Message: msgRateLimited},
		},
		{
			name: "server error",
			err:  genai.APIError{Code: 500},
			want: Intent{Name: IntentError, Message: msgUnreachable},
		},
		{
			name: "network error",
			err:  errors.New("dial tcp: no route to host"),
			want: Intent{Name: IntentError, Message: msgUnreachable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: tt.text, err: tt.err}
			cl, err := newGeminiClassifier(gen, "", testLogger())
			require.NoError(t, err)

			got := cl.Classify(context.Background(), "utterance")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, gen.calls)
			assert.Equal(t, DefaultModel, gen.model)
			require.NotNil(t, gen.config)
			assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
		})
	}
}

func TestNewGeminiClassifier_RequiresKey(t *testing.T) {
	_, err := NewGeminiClassifier(context.Background(), "", "", testLogger())
	assert.Error(t, err)
}

func TestIntentSchemaCoversAllIntents(t *testing.T) {
	cl, err := newGeminiClassifier(&fakeGenerator{}, "m", testLogger())
	require.NoError(t, err)

	for _, name := range IntentNames() {
		in, err := cl.parse(fmt.Sprintf(`{"intent":%q}`, name))
		require.NoError(t, err, name)
		assert.Equal(t, name, in.Name)
	}
}
