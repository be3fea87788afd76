package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	UI     UIConfig     `mapstructure:"ui"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// DataConfig locates the report CSV files.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ResultsPerPage int `mapstructure:"results_per_page"`
}

// LLMConfig holds synthesis provider settings.
type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	APIKey    string `mapstructure:"api_key"`
	RateLimit int    `mapstructure:"rate_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix DEVREPORTS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("data.dir", "data")
	v.SetDefault("ui.results_per_page", 10)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", 50)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "devreports", "devreports.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DEVREPORTS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "devreports"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DEVREPORTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.ResultsPerPage <= 0 {
		c.UI.ResultsPerPage = 10
	}
	return c, nil
}

// ResolveAPIKey returns the configured key, preferring the env var named
// by api_key_env over the key stored in the config file.
func (c Config) ResolveAPIKey() string {
	if c.LLM.APIKeyEnv != "" {
		if key := strings.TrimSpace(os.Getenv(c.LLM.APIKeyEnv)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(c.LLM.APIKey)
}

// Save writes the provided config to disk, creating the config directory if needed.
// The API key is stored in plain text in the config file; encourage users to prefer env vars.
func Save(cfg Config) error {
	path := os.Getenv("DEVREPORTS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "devreports", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("data.dir", cfg.Data.Dir)
	v.Set("ui.results_per_page", cfg.UI.ResultsPerPage)
	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.api_key_env", cfg.LLM.APIKeyEnv)
	v.Set("llm.api_key", cfg.LLM.APIKey)
	v.Set("llm.model", cfg.LLM.Model)
	v.Set("llm.base_url", cfg.LLM.BaseURL)
	v.Set("llm.max_tokens", cfg.LLM.MaxTokens)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.api_key", cfg.Server.APIKey)
	v.Set("server.rate_limit", cfg.Server.RateLimit)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
