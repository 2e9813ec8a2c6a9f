// Package config loads the optional JSON configuration file. Secrets are
// never stored in the file; they are resolved from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	defaultModel      = "gpt-4o"
	defaultImageModel = "gpt-image-1"
	defaultAPIKeyEnv  = "OPENAI_API_KEY"
	defaultImagesDir  = "data/images"
)

// LLMConfig selects the completion/image provider and models.
type LLMConfig struct {
	Provider   string `json:"provider,omitempty"`
	Model      string `json:"model,omitempty"`
	ImageModel string `json:"image_model,omitempty"`
	APIKeyEnv  string `json:"api_key_env,omitempty"`
	BaseURL    string `json:"base_url,omitempty"`
}

type Config struct {
	LLM        LLMConfig `json:"llm,omitempty"`
	ImagesDir  string    `json:"images_dir,omitempty"`
	ServerAddr string    `json:"server_addr,omitempty"`
}

func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:   "openai",
			Model:      defaultModel,
			ImageModel: defaultImageModel,
			APIKeyEnv:  defaultAPIKeyEnv,
		},
		ImagesDir: defaultImagesDir,
	}
}

// Load reads JSON config from disk. A missing file yields the defaults;
// unset fields fall back to them.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel
	}
	if cfg.LLM.ImageModel == "" {
		cfg.LLM.ImageModel = defaultImageModel
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = defaultAPIKeyEnv
	}
	if cfg.ImagesDir == "" {
		cfg.ImagesDir = defaultImagesDir
	}
	return cfg, nil
}

// ResolveAPIKey reads the provider credential from the environment. It fails
// fast so no stage runs without a key.
func (c Config) ResolveAPIKey() (string, error) {
	key := os.Getenv(c.LLM.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.LLM.APIKeyEnv)
	}
	return key, nil
}
