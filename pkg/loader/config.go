package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	// FileExtension is the catalog file suffix the loader recognizes.
	FileExtension = ".ftl"
	// DefaultDir is the subdirectory holding the fallback/schema catalogs
	// that bindings are generated from.
	DefaultDir = "default"
)

// Config controls where catalogs are loaded from and which language acts
// as the fallback.
type Config struct {
	// BasePath is the resource root. Empty means the "localizations"
	// subdirectory of the current working directory.
	BasePath string `env:"TRANSLATION_DIR"`
	// DefaultLanguage must parse as a valid language identifier.
	DefaultLanguage string `env:"DEFAULT_LANG" envDefault:"en_US"`
}

// LoadConfig reads the configuration from the environment. A .env file is
// loaded opportunistically; it is optional when the variables come from
// the environment itself.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse localization environment: %w", err)
	}
	if cfg.BasePath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve current working directory: %w", err)
		}
		cfg.BasePath = filepath.Join(wd, "localizations")
	}
	return cfg, nil
}

// defaultTag parses the configured default language, normalizing spellings
// like "en_US" to their canonical tag.
func (c Config) defaultTag() (language.Tag, error) {
	tag, err := language.Parse(c.DefaultLanguage)
	if err != nil {
		return language.Tag{}, fmt.Errorf("invalid default language %q: %w", c.DefaultLanguage, err)
	}
	return tag, nil
}
