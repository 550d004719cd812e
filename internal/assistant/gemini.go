package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
)

// Config selects the model and sampling parameters for GeminiClient.
type Config struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// ConfigFromSettings builds a Config from stored settings, falling back to
// defaults for unset values.
func ConfigFromSettings(s models.Settings, apiKey string) Config {
	models.ApplyDefaultSettings(&s)
	return Config{
		APIKey:          apiKey,
		Model:           s.AIModel,
		Temperature:     s.AITemperature,
		MaxOutputTokens: s.AIMaxOutputTokens,
	}
}

// GeminiClient is a Generator backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

var _ Generator = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultAIModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.Model,
		config: generationConfig(cfg),
	}, nil
}

// generationConfig applies the sampling parameters and blocks medium-or-worse
// content in every harm category.
func generationConfig(cfg Config) *genai.GenerateContentConfig {
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = constants.DefaultAITemperature
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = constants.DefaultAIMaxOutputTokens
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	safety := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		safety = append(safety, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}

	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		TopK:            genai.Ptr(float32(constants.DefaultAITopK)),
		TopP:            genai.Ptr(float32(constants.DefaultAITopP)),
		MaxOutputTokens: int32(maxTokens),
		SafetySettings:  safety,
	}
}

func toContents(turns []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.RoleUser
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}

func (c *GeminiClient) Generate(ctx context.Context, turns []Turn) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, toContents(turns), c.config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	return resp.Text(), nil
}
