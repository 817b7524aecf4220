package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fluentloc/pkg/syntax/ast"
)

// ErrIncomplete is wrapped by the default-bundle completeness check when
// expected keys are missing.
var ErrIncomplete = errors.New("incomplete default bundle")

// ValidateDefaultBundleComplete reads the configuration from the
// environment and runs the completeness check. Generated bindings call
// this once at startup; a failure indicates a packaging or authoring
// defect and must be treated as fatal.
func ValidateDefaultBundleComplete(expectedMessages, expectedTerms []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return ValidateDefaultBundleCompleteWithConfig(cfg, expectedMessages, expectedTerms)
}

// ValidateDefaultBundleCompleteWithConfig re-reads the default language's
// own catalogs and reports, in one aggregated error, every expected
// message or term that has no value there. Terms are prefixed with "-" in
// the report so the two kinds stay distinguishable. Non-default catalogs
// may legitimately omit entries; the default language is the floor every
// bundle inherits, so it may not.
func ValidateDefaultBundleCompleteWithConfig(cfg Config, expectedMessages, expectedTerms []string) error {
	slog.Debug("validating default bundle has all expected keys")

	tag, err := cfg.defaultTag()
	if err != nil {
		return err
	}

	resources, err := LoadResourcesFromFolder(filepath.Join(cfg.BasePath, tag.String()))
	if err != nil {
		return err
	}

	foundMessages := make(map[string]struct{})
	foundTerms := make(map[string]struct{})
	for _, res := range resources {
		for _, entry := range res.AST.Entries {
			switch e := entry.(type) {
			case *ast.Message:
				if e.Value != nil {
					foundMessages[e.ID] = struct{}{}
				}
			case *ast.Term:
				foundTerms[e.ID] = struct{}{}
			}
		}
	}

	var missing []string
	for _, name := range expectedMessages {
		if _, ok := foundMessages[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, name := range expectedTerms {
		if _, ok := foundTerms[name]; !ok {
			missing = append(missing, "-"+name)
		}
	}

	if len(missing) == 0 {
		slog.Info("default bundle is valid", "language", tag.String())
		return nil
	}
	return fmt.Errorf("%w: the following localization keys were not found in the default language bundle: %s",
		ErrIncomplete, strings.Join(missing, ", "))
}
