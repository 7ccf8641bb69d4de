// Package llm adapts the Gemini API to the chat.Generator interface.
package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/mediassistco/mediassist/pkg/chat"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Generation parameters for every request.
const (
	temperature     = 0.7
	topP            = 0.95
	topK            = 40
	maxOutputTokens = 1024
)

// GeminiClient implements chat.Generator against the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini-backed generator using the given API key.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Model returns the configured model name.
func (g *GeminiClient) Model() string {
	return g.modelName
}

// Generate implements chat.Generator. The accumulated model context is
// replayed as conversation history ahead of the current prompt, so the
// provider sees exactly what it has seen before plus the new prompt.
func (g *GeminiClient) Generate(ctx context.Context, history []chat.ModelTurn, promptText string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == chat.ModelRoleModel {
			role = genai.RoleModel
		}

		contents = append(contents, genai.NewContentFromText(turn.Text(), role))
	}

	contents = append(contents, genai.NewContentFromText(promptText, genai.RoleUser))

	temp := float32(temperature)
	tp := float32(topP)
	tk := float32(topK)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &tp,
		TopK:            &tk,
		MaxOutputTokens: int32(maxOutputTokens),
		SafetySettings:  safetySettings(),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}

	return text, nil
}

// safetySettings blocks medium-and-above severity for the four harm
// categories the assistant enforces.
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}

	return settings
}
