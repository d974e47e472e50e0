// Package config loads the model API credentials required by every run.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is the settings file read when no --config flag is given.
const DefaultPath = "config.json"

// Config holds the model API settings. It is built once at process start
// and passed into the components that need it.
type Config struct {
	APIKey    string
	APIBase   string
	ModelName string
}

// requiredKeys are the settings that must be present and non-empty.
var requiredKeys = []string{"api_key", "api_base", "model_name"}

// Load reads and validates the settings file at path. A missing file,
// malformed JSON, or any absent/empty required key is an error; the
// validation error names every missing key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration fields: %s", strings.Join(missing, ", "))
	}

	return &Config{
		APIKey:    v.GetString("api_key"),
		APIBase:   v.GetString("api_base"),
		ModelName: v.GetString("model_name"),
	}, nil
}
