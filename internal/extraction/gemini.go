package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tyler-sommer/stick"
	"google.golang.org/genai"

	"mercury/internal/edi/models"
)

// Gemini extracts transaction data with Google's Gemini models, asking for
// JSON output at temperature zero so repeated runs of the same document stay
// stable.
type Gemini struct {
	client  *genai.Client
	model   string
	prompts *Prompts
	logger  *slog.Logger
}

// NewGemini builds a Gemini extractor from an API key.
func NewGemini(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	prompts, err := LoadPrompts()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}
	return &Gemini{client: client, model: model, prompts: prompts, logger: logger}, nil
}

func (g *Gemini) Extract(ctx context.Context, req Request) (*models.TransactionData, error) {
	prompt, err := g.prompts.Render("transaction", map[string]stick.Value{
		"transaction_type": req.TransactionType,
		"document":         req.Text,
		"metadata_summary": req.MetadataSummary,
	})
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temperature,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in model response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no parts in model response")
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return nil, fmt.Errorf("empty text in model response")
	}

	g.logger.Debug("extraction response received",
		"model", g.model,
		"transaction_type", req.TransactionType,
		"response_length", len(text))

	var data models.TransactionData
	if err := json.Unmarshal([]byte(stripFences(text)), &data); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	if data.TransactionType == "" {
		data.TransactionType = req.TransactionType
	}
	return &data, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite the JSON response MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
