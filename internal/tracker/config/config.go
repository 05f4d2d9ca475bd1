package config

import (
	"golang-broker-tracker/pkg/config"
)

// Broker declares one tracked research firm: how to search for its calls
// and which tokens identify it in a result. Aliases are matched
// case-insensitively against the combined title+description text.
type Broker struct {
	Name    string   `mapstructure:"name"`
	Aliases []string `mapstructure:"aliases"`
	Queries []string `mapstructure:"queries"`
}

// MatchTokens returns the tokens that identify this broker in article text:
// the broker name itself plus the configured aliases.
func (b Broker) MatchTokens() []string {
	return append([]string{b.Name}, b.Aliases...)
}

// News holds the news search provider configuration.
type News struct {
	Language            string   `mapstructure:"language"`
	Country             string   `mapstructure:"country"`
	LookbackDays        int      `mapstructure:"lookback_days"`
	BlacklistedSources  []string `mapstructure:"blacklisted_sources"`
	MaxRequestPerMinute int      `mapstructure:"max_request_per_minute"`
	FetchFullContent    bool     `mapstructure:"fetch_full_content"`
}

// Groq holds the configuration for the Groq API (primary extractor).
type Groq struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API (fallback extractor).
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Ingestion holds the scheduling knobs for the pipeline job.
type Ingestion struct {
	Cron string `mapstructure:"cron"`
}

// Telegram holds configuration for the run-summary notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// MasterList holds the source of the exchange equity master list.
type MasterList struct {
	URL string `mapstructure:"url"`
}

// Config holds the full configuration for the tracker service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	News       News            `mapstructure:"news"`
	Brokers    []Broker        `mapstructure:"brokers"`
	Groq       Groq            `mapstructure:"groq"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Ingestion  Ingestion       `mapstructure:"ingestion"`
	Telegram   Telegram        `mapstructure:"telegram"`
	MasterList MasterList      `mapstructure:"master_list"`
}

// Load loads the tracker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
