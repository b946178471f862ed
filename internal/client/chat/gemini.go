package chat

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"google.golang.org/genai"
)

// DefaultModel модель Gemini по умолчанию
const DefaultModel = "gemini-2.5-flash-lite"

const (
	msgRateLimited = "rate limited: too many requests to the assistant, try again later"
	msgUnreachable = "could not reach the assistant"
)

//go:embed intent.schema.json
var intentSchema []byte

const systemPrompt = `Classify the user's message about product categories of a hardware store.
Answer with a single JSON object: {"intent": "...", "data": {"name": "...", "description": "..."}, "selection": "..."}.
intent is one of: crear (create a category), listar (list categories), actualizar (update a category),
eliminar (delete a category), seleccionar_categoria (pick a category by name or number),
actualizar_datos (new name/description for the selected category), desconocida (anything else).
Include data only when the message carries a name or description, selection only when it names or numbers a category.`

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClassifier классификатор намерений на Gemini API
type GeminiClassifier struct {
	gen    generator
	schema *jsonschema.Schema
	logger *slog.Logger
	model  string
}

// NewGeminiClassifier создает клиента Gemini API
func NewGeminiClassifier(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiClassifier(client.Models, model, logger)
}

func newGeminiClassifier(gen generator, model string, logger *slog.Logger) (*GeminiClassifier, error) {
	if model == "" {
		model = DefaultModel
	}

	schema, err := compileIntentSchema()
	if err != nil {
		return nil, err
	}

	return &GeminiClassifier{
		gen:    gen,
		model:  model,
		schema: schema,
		logger: logger,
	}, nil
}

func compileIntentSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(intentSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse intent schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("mem://intent.schema.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add intent schema: %w", err)
	}
	schema, err := c.Compile("mem://intent.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile intent schema: %w", err)
	}
	return schema, nil
}

// Classify отправляет текст в Gemini и разбирает JSON ответ.
// 429 и сетевые ошибки возвращаются как IntentError, невалидный ответ - как IntentUnknown.
func (g *GeminiClassifier) Classify(ctx context.Context, utterance string) Intent {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       genai.Ptr[float32](0),
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: utterance}}}}

	res, err := g.gen.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		if isRateLimited(err) {
			g.logger.Warn("Classifier rate limited", "model", g.model)
			return Intent{Name: IntentError, Message: msgRateLimited}
		}
		g.logger.Error("Classifier request failed", "model", g.model, "error", err)
		return Intent{Name: IntentError, Message: msgUnreachable}
	}

	intent, err := g.parse(res.Text())
	if err != nil {
		g.logger.Warn("Classifier returned unusable payload", "error", err)
		return Intent{Name: IntentUnknown}
	}
	return intent
}

// parse проверяет ответ по JSON схеме и приводит его к Intent
func (g *GeminiClassifier) parse(text string) (Intent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Intent{}, errors.New("empty response")
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return Intent{}, fmt.Errorf("invalid json: %w", err)
	}
	if err := g.schema.Validate(doc); err != nil {
		return Intent{}, fmt.Errorf("schema violation: %w", err)
	}

	var raw struct {
		Data      *IntentData     `json:"data"`
		Name      IntentName      `json:"intent"`
		Selection json.RawMessage `json:"selection"`
		Message   string          `json:"message"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Intent{}, fmt.Errorf("failed to decode intent: %w", err)
	}

	intent := Intent{
		Name:    raw.Name,
		Data:    raw.Data,
		Message: raw.Message,
	}
	intent.Selection = selectionString(raw.Selection)
	if intent.Data != nil {
		intent.Data.Name = strings.TrimSpace(intent.Data.Name)
		intent.Data.Description = strings.TrimSpace(intent.Data.Description)
	}
	return intent, nil
}

// selectionString модель может вернуть номер числом или строкой
func selectionString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
	}
	return ""
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusTooManyRequests
	}
	return false
}
