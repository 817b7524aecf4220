package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/language"

	"fluentloc/pkg/bundle"
)

// LocalizationHolder maps language identifiers to their assembled bundles.
// It is built once at startup and never mutated afterwards, so it can be
// shared across concurrent lookups.
type LocalizationHolder struct {
	bundles         map[string]*bundle.Bundle
	defaultLanguage string
}

// Load reads the configuration from the environment and assembles one
// bundle per language directory under the resource root.
func Load() (*LocalizationHolder, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return LoadWithConfig(cfg)
}

// LoadWithConfig assembles the holder for an explicit configuration.
// Every subdirectory of the resource root whose name parses as a language
// identifier becomes a bundle; invalid names are skipped with a warning
// and non-directories silently. The default language must end up with a
// bundle or loading fails.
func LoadWithConfig(cfg Config) (*LocalizationHolder, error) {
	defaultTag, err := cfg.defaultTag()
	if err != nil {
		return nil, err
	}
	defaultLanguage := defaultTag.String()

	slog.Debug("loading localizations", "dir", cfg.BasePath, "default", defaultLanguage)

	defaults, err := LoadResourcesFromFolder(filepath.Join(cfg.BasePath, DefaultDir))
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("read localizations base directory %s: %w", cfg.BasePath, err)
	}

	bundles := make(map[string]*bundle.Bundle)
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			slog.Debug("skipping non-directory", "path", filepath.Join(cfg.BasePath, name))
			continue
		}
		if name == DefaultDir {
			continue
		}

		tag, err := language.Parse(name)
		if err != nil {
			slog.Warn("skipping directory with invalid language identifier", "name", name)
			continue
		}

		b, err := loadBundle(cfg.BasePath, name, tag, defaults)
		if err != nil {
			return nil, err
		}
		bundles[tag.String()] = b
	}

	if _, ok := bundles[defaultLanguage]; !ok {
		return nil, fmt.Errorf("no catalog directory found for default language %q under %s", defaultLanguage, cfg.BasePath)
	}

	return &LocalizationHolder{
		bundles:         bundles,
		defaultLanguage: defaultLanguage,
	}, nil
}

// loadBundle builds one language's bundle: defaults first, then the
// language's own catalogs with override semantics. A throwaway bundle
// without the defaults catches duplicate keys within the language itself,
// which overriding would otherwise mask.
func loadBundle(basePath, dirName string, tag language.Tag, defaults []Resource) (*bundle.Bundle, error) {
	langName := tag.String()
	slog.Debug("loading language", "language", langName)

	resources, err := LoadResourcesFromFolder(filepath.Join(basePath, dirName))
	if err != nil {
		return nil, err
	}

	b := bundle.New(tag)
	for _, def := range defaults {
		b.AddResourceOverriding(def.AST)
	}

	test := bundle.New(tag)
	for _, res := range resources {
		if err := test.AddResource(res.AST); err != nil {
			return nil, fmt.Errorf("load catalog %s/%s: %w", langName, res.Name, err)
		}
		b.AddResourceOverriding(res.AST)
	}
	return b, nil
}

// Bundle returns the bundle for the requested language, or the default
// bundle when the language is unknown.
func (h *LocalizationHolder) Bundle(lang string) *bundle.Bundle {
	if b, ok := h.bundles[lang]; ok {
		return b
	}
	return h.DefaultBundle()
}

// DefaultBundle returns the default language's bundle. Load guarantees it
// exists.
func (h *LocalizationHolder) DefaultBundle() *bundle.Bundle {
	return h.bundles[h.defaultLanguage]
}

// DefaultLanguage returns the configured default language identifier in
// its canonical spelling.
func (h *LocalizationHolder) DefaultLanguage() string {
	return h.defaultLanguage
}

// Languages lists every language a bundle was assembled for, sorted.
func (h *LocalizationHolder) Languages() []string {
	langs := make([]string, 0, len(h.bundles))
	for lang := range h.bundles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
