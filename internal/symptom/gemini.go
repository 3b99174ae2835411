package symptom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for fallback analysis.
const DefaultModel = "gemini-2.0-flash"

// Default generation settings for the fallback.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 20
)

// contentGenerator is the subset of *genai.Models the fallback calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures the Gemini fallback.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// GeminiFallback asks a Gemini model for a specialization.
type GeminiFallback struct {
	models      contentGenerator
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiFallback creates a fallback backed by the Gemini API.
func NewGeminiFallback(ctx context.Context, cfg GeminiConfig) (*GeminiFallback, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGeminiFallback(client.Models, cfg), nil
}

func newGeminiFallback(models contentGenerator, cfg GeminiConfig) *GeminiFallback {
	f := &GeminiFallback{
		models:      models,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if f.model == "" {
		f.model = DefaultModel
	}
	if f.temperature == 0 {
		f.temperature = DefaultTemperature
	}
	if f.maxTokens == 0 {
		f.maxTokens = DefaultMaxTokens
	}
	return f
}

func systemInstruction(region string) string {
	return fmt.Sprintf(`You are a medical assistant specialized in %s healthcare.
Analyze the symptoms and return only the most appropriate medical specialization name.
Consider common medical practices and disease patterns in %s.
Specializations: %s.
Return just one specialization name, nothing else.`, region, region, strings.Join(Specializations, ", "))
}

// Suggest implements Fallback.
func (f *GeminiFallback) Suggest(ctx context.Context, symptoms, region string) (string, error) {
	resp, err := f.models.GenerateContent(ctx, f.model,
		genai.Text(fmt.Sprintf("Symptoms: %s\nPatient Location: %s", symptoms, region)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction(region), genai.RoleUser),
			Temperature:       genai.Ptr(f.temperature),
			MaxOutputTokens:   f.maxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", f.model, err)
	}
	return resp.Text(), nil
}
