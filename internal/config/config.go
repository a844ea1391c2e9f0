package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the only persisted config file schema.
type Config struct {
	Provider       string `toml:"provider"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	EmbedModel     string `toml:"embed_model"`
	WidthCap       int    `toml:"width_cap"`
	DataDir        string `toml:"data_dir"`
	StoreExchanges bool   `toml:"store_exchanges"`
	Source         string `toml:"-"`
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

func Default() Config {
	return Config{
		Provider:   ProviderOpenAI,
		Model:      "gpt-4o",
		EmbedModel: "text-embedding-3-small",
		WidthCap:   100,
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".a0", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

// applyEnv 环境变量优先于配置文件，与原始工具的取值顺序一致。
func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); env != "" {
		cfg.BaseURL = env
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderAnthropic:
		if env := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); env != "" {
			cfg.APIKey = env
		}
	default:
		if env := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); env != "" {
			cfg.APIKey = env
		}
	}
	return cfg
}

// ResolveDataDir returns the directory holding the document store and
// transcripts, defaulting to ~/.a0.
func (c Config) ResolveDataDir() (string, error) {
	if dir := strings.TrimSpace(c.DataDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".a0"), nil
}
