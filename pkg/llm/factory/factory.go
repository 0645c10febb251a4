package factory

import (
	"ai-studymate-be/internal/config"
	"ai-studymate-be/pkg/llm"
	"ai-studymate-be/pkg/llm/openaicompat"
)

// Factory hands out the configured providers. Both backends speak the
// chat-completions dialect; they differ only in endpoint, key and model.
type Factory struct {
	primary   llm.LLMProvider
	secondary llm.LLMProvider
}

func New(cfg config.AIConfig) *Factory {
	return &Factory{
		primary: openaicompat.NewProvider(
			cfg.OpenAIBaseURL,
			cfg.OpenAIAPIKey,
			cfg.OpenAIModel,
			"OpenAI",
		),
		secondary: openaicompat.NewProvider(
			cfg.DeepSeekBaseURL,
			cfg.DeepSeekAPIKey,
			cfg.DeepSeekModel,
			"DeepSeek",
		),
	}
}

// ProviderFor maps the request-level useDeepSeek flag onto a backend.
func (f *Factory) ProviderFor(useDeepSeek bool) llm.LLMProvider {
	if useDeepSeek {
		return f.secondary
	}
	return f.primary
}
