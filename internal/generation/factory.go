package generation

import (
	"context"
	"fmt"

	"github.com/pathwise-labs/insights-service/internal/config"
)

// NewContentGenerator creates a ContentGenerator from configuration.
func NewContentGenerator(ctx context.Context, cfg *config.Config) (ContentGenerator, error) {
	switch cfg.GeneratorProvider {
	case "gemini":
		return NewGeminiGenerator(ctx, GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	case "openai":
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})
	case "mock":
		return NewMockGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown generator provider: %q", cfg.GeneratorProvider)
	}
}
