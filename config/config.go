package config

import (
	"fmt"

	"github.com/veslo-ai/scribe/llm/ollama"
	"github.com/veslo-ai/scribe/logger"
	"github.com/veslo-ai/scribe/server"
	"github.com/veslo-ai/scribe/session"
	"github.com/veslo-ai/scribe/transcription/whisper"
	"github.com/veslo-ai/scribe/validation"
)

// Config is the full application configuration.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Server      server.Config `yaml:"server" mapstructure:"server"`
	Session     SessionConfig `yaml:"session" mapstructure:"session"`
	Engine      EngineConfig  `yaml:"engine" mapstructure:"engine"`
	LLM         LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Prompts     PromptsConfig `yaml:"prompts" mapstructure:"prompts"`
}

// SessionConfig holds the default settings new streaming sessions start with.
type SessionConfig struct {
	Language                     string  `yaml:"language" mapstructure:"language"`
	ChunkLengthMS                int64   `yaml:"chunk_length_ms" mapstructure:"chunk_length_ms"`
	LanguageProbabilityThreshold float64 `yaml:"language_probability_threshold" mapstructure:"language_probability_threshold"`
}

// Settings converts the config block to session settings.
func (c SessionConfig) Settings() session.Settings {
	return session.Settings{
		Language:                     c.Language,
		ChunkLengthMS:                c.ChunkLengthMS,
		LanguageProbabilityThreshold: c.LanguageProbabilityThreshold,
	}
}

// EngineConfig holds the transcription engine wiring.
type EngineConfig struct {
	Provider string         `yaml:"provider" mapstructure:"provider"`
	Whisper  whisper.Config `yaml:"whisper" mapstructure:"whisper"`
	// MaxConcurrent bounds engine calls in flight across all sessions.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// MaxWaitMS is how long a session waits for an engine slot before failing.
	MaxWaitMS int `yaml:"max_wait_ms" mapstructure:"max_wait_ms"`
}

// LLMConfig holds the text generation wiring for the summarization endpoints.
type LLMConfig struct {
	Provider string        `yaml:"provider" mapstructure:"provider"`
	Ollama   ollama.Config `yaml:"ollama" mapstructure:"ollama"`
}

// PromptsConfig points at the YAML prompt library.
type PromptsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ApplyDefaults fills unset fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "scribe"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()

	if c.Session.Language == "" {
		c.Session.Language = session.DefaultLanguage
	}
	if c.Session.ChunkLengthMS == 0 {
		c.Session.ChunkLengthMS = session.DefaultChunkLengthMS
	}
	if c.Session.LanguageProbabilityThreshold == 0 {
		c.Session.LanguageProbabilityThreshold = session.DefaultLanguageProbabilityThreshold
	}

	if c.Engine.Provider == "" {
		c.Engine.Provider = whisper.ProviderName
	}
	c.Engine.Whisper.ApplyDefaults()
	if c.Engine.MaxConcurrent == 0 {
		c.Engine.MaxConcurrent = 4
	}
	if c.Engine.MaxWaitMS == 0 {
		c.Engine.MaxWaitMS = 30000
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = ollama.ProviderName
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	v := validation.New().
		OneOf("environment", c.Environment, []string{"development", "staging", "production"}).
		Min("engine.max_concurrent", c.Engine.MaxConcurrent, 1)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Session.Settings().Validate(); err != nil {
		return fmt.Errorf("config.session: %w", err)
	}
	return nil
}
