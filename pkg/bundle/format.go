package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"

	"fluentloc/pkg/syntax/ast"
)

// maxResolveDepth bounds runtime reference chains so a pathological bundle
// degrades into a formatting error instead of unbounded recursion.
const maxResolveDepth = 100

// FormatPattern renders a pattern with the given arguments. Formatting
// problems (missing arguments, unknown references) do not abort the
// render: a fallback fragment is written in place and the problem is
// collected into the returned error list.
func (b *Bundle) FormatPattern(p *ast.Pattern, args *Args) (string, []error) {
	f := &formatter{bundle: b, args: args}
	var sb strings.Builder
	f.writePattern(&sb, p, 0)
	return sb.String(), f.errors
}

type formatter struct {
	bundle *Bundle
	args   *Args
	errors []error
}

func (f *formatter) errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Errorf(format, args...))
}

func (f *formatter) writePattern(sb *strings.Builder, p *ast.Pattern, depth int) {
	for _, el := range p.Elements {
		switch e := el.(type) {
		case *ast.Text:
			sb.WriteString(e.Value)
		case *ast.Placeable:
			f.writeExpression(sb, e.Expression, depth)
		}
	}
}

func (f *formatter) writeExpression(sb *strings.Builder, expr ast.Expression, depth int) {
	if depth > maxResolveDepth {
		f.errorf("reference chain exceeds depth %d", maxResolveDepth)
		return
	}
	switch e := expr.(type) {
	case *ast.StringLiteral:
		sb.WriteString(e.Value)
	case *ast.NumberLiteral:
		sb.WriteString(e.Value)
	case *ast.VariableReference:
		v, ok := f.args.get(e.ID)
		if !ok {
			f.errorf("unknown variable $%s", e.ID)
			fmt.Fprintf(sb, "{$%s}", e.ID)
			return
		}
		sb.WriteString(v.String())
	case *ast.MessageReference:
		msg, ok := f.bundle.Message(e.ID)
		if !ok {
			f.errorf("unknown message %s", e.ID)
			fmt.Fprintf(sb, "{%s}", e.ID)
			return
		}
		pattern := msg.Value
		if e.Attribute != "" {
			pattern = findAttribute(msg.Attributes, e.Attribute)
		}
		if pattern == nil {
			f.errorf("message %s has no value for reference", e.ID)
			fmt.Fprintf(sb, "{%s}", e.ID)
			return
		}
		f.writePattern(sb, pattern, depth+1)
	case *ast.TermReference:
		term, ok := f.bundle.Term(e.ID)
		if !ok {
			f.errorf("unknown term -%s", e.ID)
			fmt.Fprintf(sb, "{-%s}", e.ID)
			return
		}
		pattern := &term.Value
		if e.Attribute != "" {
			pattern = findAttribute(term.Attributes, e.Attribute)
		}
		if pattern == nil {
			f.errorf("term -%s has no attribute .%s", e.ID, e.Attribute)
			fmt.Fprintf(sb, "{-%s}", e.ID)
			return
		}
		f.writePattern(sb, pattern, depth+1)
	case *ast.FunctionReference:
		f.errorf("unknown function %s()", e.ID)
		fmt.Fprintf(sb, "{%s()}", e.ID)
	case *ast.Placeable:
		f.writeExpression(sb, e.Expression, depth+1)
	case *ast.Select:
		f.writeSelect(sb, e, depth)
	}
}

func (f *formatter) writeSelect(sb *strings.Builder, sel *ast.Select, depth int) {
	variant := f.matchVariant(sel)
	if variant == nil {
		f.errorf("select expression has no matching variant")
		return
	}
	f.writePattern(sb, &variant.Value, depth+1)
}

// matchVariant picks the variant for the selector value: an exact key
// match first, then the plural category for numeric selectors, then the
// default variant.
func (f *formatter) matchVariant(sel *ast.Select) *ast.Variant {
	value, ok := f.selectorValue(sel.Selector)
	if ok {
		rendered := value.String()
		for i := range sel.Variants {
			if sel.Variants[i].Key == rendered {
				return &sel.Variants[i]
			}
		}
		if value.isNumber() {
			category := pluralCategory(f.bundle, value.num)
			for i := range sel.Variants {
				if sel.Variants[i].Key == category {
					return &sel.Variants[i]
				}
			}
		}
	}
	for i := range sel.Variants {
		if sel.Variants[i].Default {
			return &sel.Variants[i]
		}
	}
	return nil
}

func (f *formatter) selectorValue(expr ast.Expression) (Value, bool) {
	switch e := expr.(type) {
	case *ast.VariableReference:
		v, ok := f.args.get(e.ID)
		if !ok {
			f.errorf("unknown variable $%s in selector", e.ID)
			return Value{}, false
		}
		return v, true
	case *ast.StringLiteral:
		return String(e.Value), true
	case *ast.NumberLiteral:
		n, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			f.errorf("invalid number literal %q in selector", e.Value)
			return Value{}, false
		}
		return Number(n), true
	default:
		f.errorf("unsupported selector expression")
		return Value{}, false
	}
}

var pluralForms = map[plural.Form]string{
	plural.Zero:  "zero",
	plural.One:   "one",
	plural.Two:   "two",
	plural.Few:   "few",
	plural.Many:  "many",
	plural.Other: "other",
}

// pluralCategory maps a number onto its CLDR cardinal category name for
// the bundle's locale.
func pluralCategory(b *Bundle, num float64) string {
	s := strconv.FormatFloat(num, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	i, _ := strconv.Atoi(intPart)
	fv, _ := strconv.Atoi(frac)
	trimmed := strings.TrimRight(frac, "0")
	tv, _ := strconv.Atoi(trimmed)
	form := plural.Cardinal.MatchPlural(b.locale, i, len(frac), len(trimmed), fv, tv)
	return pluralForms[form]
}

func findAttribute(attrs []ast.Attribute, name string) *ast.Pattern {
	for i := range attrs {
		if attrs[i].ID == name {
			return &attrs[i].Value
		}
	}
	return nil
}
