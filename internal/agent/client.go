package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Client produces a preliminary markdown assessment for a symptom description.
type Client interface {
	GenerateAssessment(ctx context.Context, symptoms string) string
}

type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the Gemini API. The sampling
// configuration is fixed; callers only supply the symptom text.
func NewGeminiClient(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClient{client: client, model: model}, nil
}

// GenerateAssessment sends one best-effort request, no retry. Any failure is
// logged and absorbed into the fallback markdown so the user always sees text.
func (c *geminiClient) GenerateAssessment(ctx context.Context, symptoms string) string {
	prompt := medicalDiagnosisPrompt + symptoms

	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.7),
			TopP:        genai.Ptr[float32](0.8),
			TopK:        genai.Ptr[float32](40),
		},
	)
	if err != nil {
		log.Printf("Error generating diagnosis: %v", err)
		return FallbackAssessment
	}

	text := result.Text()
	if text == "" {
		log.Printf("Error generating diagnosis: empty response from model %s", c.model)
		return FallbackAssessment
	}

	return text
}
