// Package config loads the gateway configuration from a TOML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath = "config.toml"
	DefaultHTTPAddr   = ":8080"
	DefaultModel      = "gpt-4o-mini"
)

// Environment variables recognized as overrides. Secrets are expected to
// arrive through these rather than the config file.
const (
	EnvTelegramToken  = "TELEGRAM_BOT"
	EnvOpenAIEndpoint = "OPENAI_ENDPOINT"
	EnvOpenAIAPIKey   = "OPENAI_APIKEY"
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
	OpenAI   OpenAIConfig   `toml:"openai"`
	Prompt   PromptConfig   `toml:"prompt"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token" validate:"required"`
}

type OpenAIConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key" validate:"required"`
	Model    string `toml:"model" validate:"required"`
}

// PromptConfig carries the persona instruction that seeds every new session.
// Empty means the built-in default persona.
type PromptConfig struct {
	System string `toml:"system"`
}

// Load reads the config file at path (optional), applies environment
// overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		OpenAI: OpenAIConfig{
			Model: DefaultModel,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvTelegramToken)); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOpenAIEndpoint)); v != "" {
		cfg.OpenAI.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOpenAIAPIKey)); v != "" {
		cfg.OpenAI.APIKey = v
	}
}
