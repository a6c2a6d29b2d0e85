package fallback

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

const systemInstruction = "You are an expert sentence analyzer."

// GenAIGenerator generates completions with the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini generator. An empty model means
// DefaultModel.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

// Generate sends prompt with temperature 0 and returns the response text.
func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0),
		MaxOutputTokens:   2048,
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return result.Text(), nil
}

// Name returns the generator name.
func (g *GenAIGenerator) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

// compile-time interface check
var _ Generator = (*GenAIGenerator)(nil)
