package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form --set key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "provider":
			cfg.Provider = val
		case "api_key":
			cfg.APIKey = val
		case "base_url":
			cfg.BaseURL = val
		case "model":
			cfg.Model = val
		case "embed_model":
			cfg.EmbedModel = val
		case "width_cap":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.WidthCap = n
			}
		case "data_dir":
			cfg.DataDir = val
		case "store_exchanges":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.StoreExchanges = b
			}
		}
	}
	return cfg
}
