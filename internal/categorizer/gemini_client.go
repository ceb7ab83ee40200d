package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finflow/statement-ingest/internal/logging"
	"finflow/statement-ingest/internal/store"
)

// GeminiClient implements ModelClient against the Google Gemini API. The
// model is configured with a fixed system instruction describing the task
// and the closed category vocabulary, and a response schema that forces a
// JSON array of {correlationId, category} objects.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient creates a Gemini-backed ModelClient.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, vocab []store.CategoryConfig, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction(vocab))},
	}
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"correlationId": {Type: genai.TypeString},
				"category":      {Type: genai.TypeString},
			},
			Required: []string{"correlationId", "category"},
		},
	}

	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// Close releases the underlying API client.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// CategorizeBatch sends one batch as a single request and returns the
// model's proposals keyed by correlation id.
func (g *GeminiClient) CategorizeBatch(ctx context.Context, items []BatchItem) (map[string]string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("serializing batch: %w", err)
	}

	g.logger.Debug("sending categorization batch",
		logging.Field{Key: logging.FieldBatchSize, Value: len(items)})

	resp, err := g.model.GenerateContent(ctx, genai.Text(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	var proposals []struct {
		CorrelationID string `json:"correlationId"`
		Category      string `json:"category"`
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(string(text))), &proposals); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	result := make(map[string]string, len(proposals))
	for _, p := range proposals {
		result[p.CorrelationID] = p.Category
	}
	return result, nil
}

// systemInstruction renders the fixed task description plus the category
// vocabulary the model must answer from.
func systemInstruction(vocab []store.CategoryConfig) string {
	var b strings.Builder
	b.WriteString("You are a bank transaction categorizer.\n")
	b.WriteString("You receive a JSON array of transactions, each with a correlationId, description, amount and currency.\n")
	b.WriteString("Assign every transaction exactly one category from this list:\n")
	for _, c := range vocab {
		if c.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}
	b.WriteString("Respond with a JSON array of {correlationId, category} objects, one per input transaction, and nothing else.")
	return b.String()
}

// cleanModelJSON strips markdown fences and surrounding junk if the model
// ignored the response format, keeping only the outermost JSON array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
