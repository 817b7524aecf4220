package loader

import (
	"fmt"
	"log/slog"
	"strings"

	"fluentloc/pkg/bundle"
)

// Localize renders the named entry from the bundle for the requested
// language, falling back to the default bundle when the language is
// unknown. Rendering problems never propagate to the caller: they are
// logged and a generic failure string embedding the entry name is
// returned instead. Generated accessors only reference entries the
// completeness check validated, so a missing entry here is an internal
// invariant violation, handled the same degraded way.
func Localize(holder *LocalizationHolder, language, name string, args *bundle.Args) string {
	b := holder.Bundle(language)

	msg, ok := b.Message(name)
	if !ok || msg.Value == nil {
		slog.Error("localization entry missing from bundle", "entry", name, "language", language)
		return localizeFailure(name)
	}

	text, errs := b.FormatPattern(msg.Value, args)
	if len(errs) > 0 {
		return handleErrors(name, errs)
	}
	return text
}

func handleErrors(name string, errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	slog.Error("failed to localize entry", "entry", name, "errors", strings.Join(msgs, ", "))
	return localizeFailure(name)
}

func localizeFailure(name string) string {
	return fmt.Sprintf("Failed to localize the %q response.", name)
}
