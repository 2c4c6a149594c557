package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/autoprestige/autoprestige/internal/refdata"
)

// Config holds application configuration.
type Config struct {
	API    APIConfig
	UI     UIConfig
	Export ExportConfig
	Log    LogConfig
	Stub   StubConfig
}

// APIConfig holds backend settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	UXDelay time.Duration `mapstructure:"ux_delay"`
}

// UIConfig holds the initial presentation settings.
type UIConfig struct {
	Language string
	Currency string
	Theme    string
}

type ExportConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Path   string
	Pretty bool
}

// StubConfig is read by the stand-in backend only.
type StubConfig struct {
	Addr   string
	DBPath string `mapstructure:"db_path"`
	// GeminiAPIKey enables the Gemini chat responder; it is never saved.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
	// ChatRate is /chat requests per second; 0 disables the limit.
	ChatRate  float64 `mapstructure:"chat_rate"`
	ChatBurst int     `mapstructure:"chat_burst"`
}

func stateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "autoprestige")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "autoprestige")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Path is the config file location, AUTOPRESTIGE_CONFIG wins.
func Path() string {
	if p := os.Getenv("AUTOPRESTIGE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "autoprestige", "config.toml")
}

// Load reads .env, the config file and env. Env var overrides use prefix AUTOPRESTIGE_.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.ux_delay", 800*time.Millisecond)
	v.SetDefault("ui.language", "vi")
	v.SetDefault("ui.currency", "USD")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("export.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(stateDir(), "client.log"))
	v.SetDefault("log.pretty", false)
	v.SetDefault("stub.addr", "127.0.0.1:8000")
	v.SetDefault("stub.db_path", filepath.Join(stateDir(), "stub.db"))
	v.SetDefault("stub.gemini_api_key", "")
	v.SetDefault("stub.gemini_model", "gemini-1.5-flash-latest")
	v.SetDefault("stub.chat_rate", 2.0)
	v.SetDefault("stub.chat_burst", 5)

	v.SetEnvPrefix("AUTOPRESTIGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if path := Path(); fileExists(path) {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Stub.GeminiAPIKey == "" {
		c.Stub.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values the views depend on.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 || c.API.UXDelay < 0 {
		return fmt.Errorf("api durations must not be negative")
	}
	if c.Stub.ChatRate < 0 || c.Stub.ChatBurst < 0 {
		return fmt.Errorf("stub chat limits must not be negative")
	}
	if _, ok := refdata.LookupCurrency(c.UI.Currency); !ok {
		return fmt.Errorf("ui.currency %q is not one of %v", c.UI.Currency, refdata.CurrencyCodes())
	}
	known := false
	for _, l := range refdata.Languages {
		known = known || l == c.UI.Language
	}
	if !known {
		return fmt.Errorf("ui.language %q is not one of %v", c.UI.Language, refdata.Languages)
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme must be dark or light, got %q", c.UI.Theme)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by `autoprestige -init-config` and to remember the shell's UI choices.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.ux_delay", cfg.API.UXDelay.String())
	v.Set("ui.language", cfg.UI.Language)
	v.Set("ui.currency", cfg.UI.Currency)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.pretty", cfg.Log.Pretty)
	v.Set("stub.addr", cfg.Stub.Addr)
	v.Set("stub.db_path", cfg.Stub.DBPath)
	v.Set("stub.gemini_model", cfg.Stub.GeminiModel)
	v.Set("stub.chat_rate", cfg.Stub.ChatRate)
	v.Set("stub.chat_burst", cfg.Stub.ChatBurst)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
