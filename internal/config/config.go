package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Feed struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
		AtomURL  string `yaml:"atom_url"`
		RSSURL   string `yaml:"rss_url"`
		Homepage string `yaml:"homepage"`
		IconURL  string `yaml:"icon_url"`
		Author   string `yaml:"author"`
	} `yaml:"feed"`
	DataSource struct {
		Symbol string `yaml:"symbol"`
	} `yaml:"data_source"`
	Session struct {
		Timezone        string `yaml:"timezone"`
		StartHour       int    `yaml:"start_hour"`
		EndHour         int    `yaml:"end_hour"`
		CadenceMinutes  int    `yaml:"cadence_minutes"`
		LookbackMinutes int    `yaml:"lookback_minutes"`
	} `yaml:"session"`
	Emit struct {
		MaxItems        int   `yaml:"max_items"`
		FallbackEnabled *bool `yaml:"fallback_enabled"`
	} `yaml:"emit"`
	Output struct {
		Dir         string `yaml:"dir"`
		IconFile    string `yaml:"icon_file"`
		PubDateZone string `yaml:"pubdate_zone"`
	} `yaml:"output"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FEED_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("FEED_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("EMIT_FALLBACK"); v != "" {
		enabled := v == "1" || v == "true" || v == "yes"
		cfg.Emit.FallbackEnabled = &enabled
	}
	if v := os.Getenv("EMIT_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Emit.MaxItems = n
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "OCGN"
	}
	if cfg.Feed.Title == "" {
		cfg.Feed.Title = fmt.Sprintf("%s Stock Price Feed", cfg.DataSource.Symbol)
	}
	if cfg.Feed.Subtitle == "" {
		cfg.Feed.Subtitle = fmt.Sprintf("Near-real-time %s stock price updates (including extended hours).", cfg.DataSource.Symbol)
	}
	if cfg.Feed.Author == "" {
		cfg.Feed.Author = fmt.Sprintf("%s Stock Feed Bot", cfg.DataSource.Symbol)
	}
	if cfg.Session.Timezone == "" {
		cfg.Session.Timezone = "America/Sao_Paulo"
	}
	if cfg.Session.StartHour == 0 {
		cfg.Session.StartHour = 4
	}
	if cfg.Session.EndHour == 0 {
		cfg.Session.EndHour = 21
	}
	if cfg.Session.CadenceMinutes == 0 {
		cfg.Session.CadenceMinutes = 5
	}
	if cfg.Session.LookbackMinutes == 0 {
		cfg.Session.LookbackMinutes = 60
	}
	if cfg.Emit.MaxItems == 0 {
		cfg.Emit.MaxItems = 50
	}
	if cfg.Emit.FallbackEnabled == nil {
		enabled := true
		cfg.Emit.FallbackEnabled = &enabled
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "docs"
	}
	if cfg.Output.PubDateZone == "" {
		cfg.Output.PubDateZone = "America/New_York"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("session.timezone: %w", err)
	}
	if c.Session.StartHour < 0 || c.Session.StartHour > 23 {
		return fmt.Errorf("session.start_hour must be within 0-23")
	}
	if c.Session.EndHour < 0 || c.Session.EndHour > 23 {
		return fmt.Errorf("session.end_hour must be within 0-23")
	}
	if c.Session.EndHour < c.Session.StartHour {
		return fmt.Errorf("session.end_hour must not precede session.start_hour")
	}
	if c.Session.CadenceMinutes <= 0 || 60%c.Session.CadenceMinutes != 0 {
		return fmt.Errorf("session.cadence_minutes must be a positive divisor of 60")
	}
	if c.Session.LookbackMinutes <= 0 {
		return fmt.Errorf("session.lookback_minutes must be positive")
	}
	if c.Emit.MaxItems <= 0 {
		return fmt.Errorf("emit.max_items must be positive")
	}
	if _, err := time.LoadLocation(c.Output.PubDateZone); err != nil {
		return fmt.Errorf("output.pubdate_zone: %w", err)
	}
	return nil
}

// FallbackEnabled reports the resolved emission-fallback flag.
func (c *Config) FallbackEnabled() bool {
	return c.Emit.FallbackEnabled == nil || *c.Emit.FallbackEnabled
}


