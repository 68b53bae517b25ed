package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./crawlsight.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	RulesFile    string `long:"rules-file" env:"RULES_FILE" description:"Optional YAML file overriding insight rule thresholds"`
	SampleSize   int    `long:"sample-size" env:"SAMPLE_SIZE" default:"50" description:"Maximum pages retained as the analyzable corpus"`
	PromptPages  int    `long:"prompt-pages" env:"PROMPT_PAGES" default:"10" description:"Maximum pages serialized into the LLM prompt"`
	StorageChunk int    `long:"storage-chunk" env:"STORAGE_CHUNK" default:"100" description:"Page rows per persistence batch"`

	// LLM provider configuration
	OpenAIAPIKey      string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (enables the OpenAI provider binding)"`
	OpenAIEndpoint    string `long:"openai-endpoint" env:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1/chat/completions" description:"OpenAI chat completions endpoint"`
	OpenAIModel       string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"OpenAI model identifier"`
	AnthropicAPIKey   string `long:"anthropic-api-key" env:"ANTHROPIC_API_KEY" description:"Anthropic API key (enables the Anthropic provider binding)"`
	AnthropicEndpoint string `long:"anthropic-endpoint" env:"ANTHROPIC_ENDPOINT" default:"https://api.anthropic.com/v1/messages" description:"Anthropic messages endpoint"`
	AnthropicModel    string `long:"anthropic-model" env:"ANTHROPIC_MODEL" default:"claude-3-5-haiku-20241022" description:"Anthropic model identifier"`
	ProviderTimeout   int    `long:"provider-timeout" env:"PROVIDER_TIMEOUT" default:"60" description:"LLM provider request timeout in seconds"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// Best-effort: a missing .env file is not an error
	_ = godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		RulesFile:         raw.RulesFile,
		SampleSize:        raw.SampleSize,
		PromptPages:       raw.PromptPages,
		StorageChunk:      raw.StorageChunk,
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		OpenAIEndpoint:    raw.OpenAIEndpoint,
		OpenAIModel:       raw.OpenAIModel,
		AnthropicAPIKey:   raw.AnthropicAPIKey,
		AnthropicEndpoint: raw.AnthropicEndpoint,
		AnthropicModel:    raw.AnthropicModel,
		ProviderTimeout:   raw.ProviderTimeout,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
