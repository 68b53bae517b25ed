package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port         string
	RulesFile    string
	SampleSize   int
	PromptPages  int
	StorageChunk int

	// LLM provider configuration
	OpenAIAPIKey      string
	OpenAIEndpoint    string
	OpenAIModel       string
	AnthropicAPIKey   string
	AnthropicEndpoint string
	AnthropicModel    string
	ProviderTimeout   int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
