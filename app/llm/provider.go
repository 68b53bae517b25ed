package llm

import (
	"net/http"
	"time"

	"github.com/crawlsight/crawlsight/app/cfg"
)

// NewCompletionFunc picks whichever provider has a configured key and returns
// its binding plus a provider name for logging. Returns (nil, "") when no key
// is configured; the analyzer then degrades without making network calls.
// OpenAI wins when both keys are set.
func NewCompletionFunc() (CompletionFunc, string) {
	c := cfg.Get()

	httpClient := &http.Client{
		Timeout: time.Duration(c.ProviderTimeout) * time.Second,
	}

	if c.OpenAIAPIKey != "" {
		client := NewOpenAIClient(c.OpenAIEndpoint, c.OpenAIAPIKey, c.OpenAIModel, httpClient)
		return client.Complete, "openai"
	}

	if c.AnthropicAPIKey != "" {
		client := NewAnthropicClient(c.AnthropicEndpoint, c.AnthropicAPIKey, c.AnthropicModel, httpClient)
		return client.Complete, "anthropic"
	}

	return nil, ""
}
