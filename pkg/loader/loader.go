// Package loader reads localization catalogs from disk and assembles one
// render-ready bundle per language, with the default language's entries
// as the floor every bundle inherits.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fluentloc/pkg/syntax"
	"fluentloc/pkg/syntax/ast"
)

// Resource pairs one parsed catalog with its name, the file name without
// extension. The name doubles as the accessor category at generation
// time.
type Resource struct {
	Name string
	AST  *ast.Resource
}

// LoadResourcesFromFolder parses every catalog file in dir. The scan is
// non-recursive; non-files and files without the catalog extension are
// skipped with a log line. An unreadable directory or file, or a file
// that fails to parse, is an error.
func LoadResourcesFromFolder(dir string) ([]Resource, error) {
	slog.Debug("loading localization resources", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read localization directory %s: %w", dir, err)
	}

	var loaded []Resource
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if !entry.Type().IsRegular() {
			slog.Debug("skipping non-file", "path", path)
			continue
		}
		if !strings.HasSuffix(name, FileExtension) {
			slog.Warn("skipping file without catalog extension", "path", path, "want", FileExtension)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read localization file %s: %w", path, err)
		}

		res, parseErrs := syntax.Parse(string(content))
		if len(parseErrs) > 0 {
			msgs := make([]string, len(parseErrs))
			for i, pe := range parseErrs {
				msgs[i] = prettifyParseError(string(content), pe)
			}
			return nil, fmt.Errorf("parse localization file %s:\n%s", path, strings.Join(msgs, "\n-----\n"))
		}

		loaded = append(loaded, Resource{
			Name: strings.TrimSuffix(name, FileExtension),
			AST:  res,
		})
	}
	return loaded, nil
}

// prettifyParseError converts a byte offset into a line:column location by
// walking the file's line boundaries, and shows the offending line.
func prettifyParseError(content string, e *syntax.ParseError) string {
	pos := 0
	lineCount := 0
	line := ""
	for _, l := range strings.Split(content, "\n") {
		line = l
		lineCount++
		if pos+len(l) >= e.Offset {
			break
		}
		pos += len(l) + 1
	}
	return fmt.Sprintf("%s at %d:%d\n    %s", e.Kind, lineCount, e.Offset-pos, line)
}
