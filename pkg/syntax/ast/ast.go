// Package ast defines the entry-level syntax tree produced by the catalog
// parser. Consumers walk patterns and placeables; they never need to know
// how the text was tokenized.
package ast

// Resource is the parsed form of one catalog file.
type Resource struct {
	Entries []Entry
}

// Entry is either a *Message or a *Term.
type Entry interface {
	entry()
}

// Message is a translatable, user-facing entry. Value is nil when the
// message only carries attributes.
type Message struct {
	ID         string
	Value      *Pattern
	Attributes []Attribute
}

// Term is a reusable private fragment, referenced from other entries with a
// leading "-". Terms always have a value.
type Term struct {
	ID         string
	Value      Pattern
	Attributes []Attribute
}

// Attribute is a named sub-pattern attached to a message or term.
type Attribute struct {
	ID    string
	Value Pattern
}

func (*Message) entry() {}
func (*Term) entry()    {}

// Pattern is a sequence of literal text fragments and placeables.
type Pattern struct {
	Elements []PatternElement
}

// PatternElement is either *Text or *Placeable.
type PatternElement interface {
	patternElement()
}

// Text is a literal fragment.
type Text struct {
	Value string
}

// Placeable is an embedded dynamic expression. It appears both as a pattern
// element and, when nested in braces, as an expression of its own.
type Placeable struct {
	Expression Expression
}

func (*Text) patternElement()      {}
func (*Placeable) patternElement() {}

// Expression is one of the inline expression types, *Select, or a nested
// *Placeable.
type Expression interface {
	expression()
}

// StringLiteral is a quoted literal inside a placeable.
type StringLiteral struct {
	Value string
}

// NumberLiteral is a numeric literal inside a placeable, kept in its source
// spelling.
type NumberLiteral struct {
	Value string
}

// VariableReference refers to a caller-supplied argument ($name).
type VariableReference struct {
	ID string
}

// MessageReference refers to another message, optionally one of its
// attributes.
type MessageReference struct {
	ID        string
	Attribute string
}

// TermReference refers to a term (-name), optionally with call arguments.
type TermReference struct {
	ID        string
	Attribute string
	Arguments []Expression
}

// FunctionReference is a call to a built-in function. The graph pass rejects
// these; the parser keeps them so the rejection can name the call site.
type FunctionReference struct {
	ID        string
	Arguments []Expression
}

// NamedArgument is a "name: value" pair inside a call argument list.
type NamedArgument struct {
	Name  string
	Value Expression
}

// Select branches on a selector expression. Exactly one variant is marked
// as the default.
type Select struct {
	Selector Expression
	Variants []Variant
}

// Variant is one branch of a select expression.
type Variant struct {
	Key     string
	Default bool
	Value   Pattern
}

func (*StringLiteral) expression()     {}
func (*NumberLiteral) expression()     {}
func (*VariableReference) expression() {}
func (*MessageReference) expression()  {}
func (*TermReference) expression()     {}
func (*FunctionReference) expression() {}
func (*NamedArgument) expression()     {}
func (*Placeable) expression()         {}
func (*Select) expression()            {}
