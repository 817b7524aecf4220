package bindgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strings"
)

// ErrTooManyVariables marks an entry needing more variables than the
// type-parameter alphabet can name. The ceiling is arbitrary but
// explicit; entries past it fail generation instead of being truncated.
var ErrTooManyVariables = errors.New("too many variables for one entry")

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate emits a gofmt-ed Go source file with the localizer surface for
// a resolved graph: the LanguageLocalizer type, the startup completeness
// check, and one accessor per non-term entry. Output is deterministic for
// a given graph.
func Generate(nodes map[string]*Node, pkg string) ([]byte, error) {
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by fluentgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	buf.WriteString("import (\n\t\"fluentloc/pkg/bundle\"\n\t\"fluentloc/pkg/loader\"\n)\n\n")

	writeLocalizer(&buf)
	writeExpectedLists(&buf, names, nodes)

	for _, name := range names {
		node := nodes[name]
		if node.Term {
			// Terms are private helpers, only reachable through other
			// entries; they never get a top-level accessor.
			continue
		}
		if err := writeAccessor(&buf, node); err != nil {
			return nil, err
		}
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated bindings: %w", err)
	}
	return src, nil
}

func writeLocalizer(buf *bytes.Buffer) {
	buf.WriteString(`// LanguageLocalizer renders catalog entries for one language, falling
// back to the default bundle when the language is unknown.
type LanguageLocalizer struct {
	holder   *loader.LocalizationHolder
	language string
}

// NewLanguageLocalizer binds a holder to one requested language.
func NewLanguageLocalizer(holder *loader.LocalizationHolder, language string) LanguageLocalizer {
	return LanguageLocalizer{holder: holder, language: language}
}

// Localize renders the named entry with the given arguments. Formatting
// errors are logged and replaced with a generic failure string; they are
// never surfaced to the caller.
func (l LanguageLocalizer) Localize(name string, args *bundle.Args) string {
	return loader.Localize(l.holder, l.language, name, args)
}

// ValidateDefaultBundleComplete checks that every entry the generated
// accessors reference carries a value in the default language's own
// catalogs. Call it once at startup and treat failure as fatal.
func ValidateDefaultBundleComplete() error {
	return loader.ValidateDefaultBundleComplete(expectedMessages, expectedTerms)
}

`)
}

func writeExpectedLists(buf *bytes.Buffer, names []string, nodes map[string]*Node) {
	buf.WriteString("var expectedMessages = []string{\n")
	for _, name := range names {
		if !nodes[name].Term {
			fmt.Fprintf(buf, "\t%q,\n", name)
		}
	}
	buf.WriteString("}\n\n")

	buf.WriteString("var expectedTerms = []string{\n")
	for _, name := range names {
		if nodes[name].Term {
			fmt.Fprintf(buf, "\t%q,\n", name)
		}
	}
	buf.WriteString("}\n\n")
}

func writeAccessor(buf *bytes.Buffer, node *Node) error {
	accessor := accessorName(node.Category, node.Name)

	if len(node.Variables) == 0 {
		fmt.Fprintf(buf, "func (l LanguageLocalizer) %s() string {\n", accessor)
		fmt.Fprintf(buf, "\treturn l.Localize(%q, nil)\n}\n\n", node.Name)
		return nil
	}

	if len(node.Variables) > len(alphabet) {
		return fmt.Errorf("%w: entry %s needs %d variables, the ceiling is %d",
			ErrTooManyVariables, node.Name, len(node.Variables), len(alphabet))
	}

	variables := make([]string, 0, len(node.Variables))
	for v := range node.Variables {
		variables = append(variables, v)
	}
	sort.Strings(variables)

	var typeParams, params []string
	for i, variable := range variables {
		letter := string(alphabet[i])
		typeParams = append(typeParams, fmt.Sprintf("%s bundle.IntoValue", letter))
		params = append(params, fmt.Sprintf("%s %s", paramName(variable), letter))
	}

	fmt.Fprintf(buf, "func %s[%s](l LanguageLocalizer, %s) string {\n",
		accessor, strings.Join(typeParams, ", "), strings.Join(params, ", "))
	buf.WriteString("\targs := bundle.NewArgs()\n")
	for _, variable := range variables {
		// Argument names must stay the original variable names; only the
		// Go parameter identifier is sanitized.
		fmt.Fprintf(buf, "\targs.Set(%q, bundle.From(%s))\n", variable, paramName(variable))
	}
	fmt.Fprintf(buf, "\treturn l.Localize(%q, args)\n}\n\n", node.Name)
	return nil
}

// accessorName derives the exported accessor identifier from the catalog
// name and the entry name: both are sanitized, and the first rune is
// upper-cased so the surface exports.
func accessorName(category, name string) string {
	joined := sanitize(category) + "_" + sanitize(name)
	return strings.ToUpper(joined[:1]) + joined[1:]
}

func sanitize(original string) string {
	return strings.ToLower(strings.ReplaceAll(original, "-", "_"))
}

// paramName sanitizes a variable name into a usable Go parameter
// identifier, stepping around keywords and the identifiers the generated
// body already uses.
func paramName(variable string) string {
	name := sanitize(variable)
	if token.IsKeyword(name) || name == "l" || name == "args" || name == "bundle" {
		name += "_"
	}
	return name
}
