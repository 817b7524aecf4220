// Package bundle holds the render-ready entries for one language and
// formats their patterns with caller-supplied arguments. A bundle is
// mutated only while it is assembled; afterwards it is read-only and safe
// for concurrent lookups without locking.
package bundle

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"fluentloc/pkg/syntax/ast"
)

// ErrDuplicateKey is wrapped by AddResource when a resource redefines an
// entry the bundle already holds.
var ErrDuplicateKey = errors.New("duplicate key")

// Bundle maps entry names to their parsed definitions for one language.
// Messages and terms live in separate namespaces, mirroring the catalog
// syntax where terms are referenced with a leading "-".
type Bundle struct {
	locale   language.Tag
	messages map[string]*ast.Message
	terms    map[string]*ast.Term
}

// New returns an empty bundle for the given locale. The locale drives
// plural-category selection during formatting.
func New(locale language.Tag) *Bundle {
	return &Bundle{
		locale:   locale,
		messages: make(map[string]*ast.Message),
		terms:    make(map[string]*ast.Term),
	}
}

// Locale returns the locale the bundle was built for.
func (b *Bundle) Locale() language.Tag { return b.locale }

// AddResource adds every entry of the resource, failing on names the
// bundle already holds. All duplicates are reported, joined into one
// error.
func (b *Bundle) AddResource(res *ast.Resource) error {
	var errs []error
	for _, entry := range res.Entries {
		switch e := entry.(type) {
		case *ast.Message:
			if _, exists := b.messages[e.ID]; exists {
				errs = append(errs, fmt.Errorf("%w: message %q is already defined", ErrDuplicateKey, e.ID))
				continue
			}
			b.messages[e.ID] = e
		case *ast.Term:
			if _, exists := b.terms[e.ID]; exists {
				errs = append(errs, fmt.Errorf("%w: term %q is already defined", ErrDuplicateKey, e.ID))
				continue
			}
			b.terms[e.ID] = e
		}
	}
	return errors.Join(errs...)
}

// AddResourceOverriding adds every entry of the resource, replacing any
// same-named entry already present. Overriding never errors; this is how
// language-specific catalogs shadow the defaults.
func (b *Bundle) AddResourceOverriding(res *ast.Resource) {
	for _, entry := range res.Entries {
		switch e := entry.(type) {
		case *ast.Message:
			b.messages[e.ID] = e
		case *ast.Term:
			b.terms[e.ID] = e
		}
	}
}

// Message looks up a message by name.
func (b *Bundle) Message(name string) (*ast.Message, bool) {
	m, ok := b.messages[name]
	return m, ok
}

// Term looks up a term by name.
func (b *Bundle) Term(name string) (*ast.Term, bool) {
	t, ok := b.terms[name]
	return t, ok
}
