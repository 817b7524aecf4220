// Package syntax parses localization catalog files into their entry-level
// AST. The grammar is the subset the loader and the bindings generator
// need: messages, terms, attributes, comments, and placeables holding
// variable references, message/term references, literals, nested
// placeables and select expressions.
package syntax

import (
	"fmt"
	"strings"

	"fluentloc/pkg/syntax/ast"
)

// ParseError reports a syntax problem at a byte offset into the source.
// The loader turns the offset into a line/column location.
type ParseError struct {
	Kind   string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// Parse turns one catalog file into its entry-level AST. All syntax errors
// found are returned together; the resource only contains entries that
// parsed cleanly.
func Parse(src string) (*ast.Resource, []*ParseError) {
	p := &parser{src: src}
	res := &ast.Resource{}
	for {
		p.skipBlankAndComments()
		if p.eof() {
			break
		}
		if entry := p.parseEntry(); entry != nil {
			res.Entries = append(res.Entries, entry)
		}
	}
	return res, p.errors
}

type parser struct {
	src    string
	pos    int
	errors []*ParseError
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) at(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func (p *parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Kind: fmt.Sprintf(format, args...), Offset: p.pos})
}

func (p *parser) skipInline() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) skipLine() {
	for !p.eof() && p.peek() != '\n' {
		p.pos++
	}
	if !p.eof() {
		p.pos++
	}
}

// skipBlankAndComments advances over blank lines and comment lines. It is
// only called at the start of a line.
func (p *parser) skipBlankAndComments() {
	for !p.eof() {
		switch p.peek() {
		case '\n', '\r':
			p.pos++
		case '#':
			p.skipLine()
		case ' ', '\t':
			mark := p.pos
			p.skipInline()
			if p.eof() || p.peek() == '\n' || p.peek() == '\r' {
				continue
			}
			// indented content with no owning entry
			p.pos = mark
			return
		default:
			return
		}
	}
}

func (p *parser) parseEntry() ast.Entry {
	switch c := p.peek(); {
	case c == '-' && isIdentStart(p.at(1)):
		return p.parseTerm()
	case isIdentStart(c):
		return p.parseMessage()
	default:
		p.errorf("expected a message or term entry")
		p.recover()
		return nil
	}
}

// recover skips forward to the next line that can start a new top-level
// entry so one malformed entry yields one error, not a cascade.
func (p *parser) recover() {
	p.skipLine()
	for !p.eof() {
		c := p.peek()
		if isIdentStart(c) || (c == '-' && isIdentStart(p.at(1))) || c == '#' || c == '\n' || c == '\r' {
			return
		}
		p.skipLine()
	}
}

func (p *parser) parseMessage() ast.Entry {
	msg := &ast.Message{ID: p.parseIdentifier()}
	p.skipInline()
	if p.peek() != '=' {
		p.errorf("expected %q after message identifier %q", "=", msg.ID)
		p.recover()
		return nil
	}
	p.pos++
	value := p.parsePattern()
	if len(value.Elements) > 0 {
		msg.Value = value
	}
	msg.Attributes = p.parseAttributes()
	if msg.Value == nil && len(msg.Attributes) == 0 {
		p.errorf("message %q has neither a value nor attributes", msg.ID)
		return nil
	}
	return msg
}

func (p *parser) parseTerm() ast.Entry {
	p.pos++ // '-'
	id := p.parseIdentifier()
	p.skipInline()
	if p.peek() != '=' {
		p.errorf("expected %q after term identifier %q", "=", id)
		p.recover()
		return nil
	}
	p.pos++
	value := p.parsePattern()
	if len(value.Elements) == 0 {
		p.errorf("term %q must have a value", id)
	}
	attrs := p.parseAttributes()
	if len(value.Elements) == 0 {
		return nil
	}
	return &ast.Term{ID: id, Value: *value, Attributes: attrs}
}

func (p *parser) parseAttributes() []ast.Attribute {
	var attrs []ast.Attribute
	for {
		// each attribute sits on its own indented line after the value
		mark := p.pos
		if p.peek() == '\r' {
			p.pos++
		}
		if p.peek() == '\n' {
			p.pos++
		}
		p.skipInline()
		if p.peek() != '.' || !isIdentStart(p.at(1)) {
			p.pos = mark
			return attrs
		}
		p.pos++
		id := p.parseIdentifier()
		p.skipInline()
		if p.peek() != '=' {
			p.errorf("expected %q after attribute .%s", "=", id)
			p.recover()
			return attrs
		}
		p.pos++
		value := p.parsePattern()
		if len(value.Elements) == 0 {
			p.errorf("attribute .%s must have a value", id)
			continue
		}
		attrs = append(attrs, ast.Attribute{ID: id, Value: *value})
	}
}

// parsePattern consumes the remainder of the current line plus any indented
// continuation lines that are not attributes, variant keys, or a closing
// brace. Continuation indentation is stripped and lines are joined with a
// newline.
func (p *parser) parsePattern() *ast.Pattern {
	pat := &ast.Pattern{}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			pat.Elements = append(pat.Elements, &ast.Text{Value: text.String()})
			text.Reset()
		}
	}
	p.skipInline()
	for {
		for !p.eof() && p.peek() != '\n' && p.peek() != '\r' {
			switch p.peek() {
			case '{':
				flush()
				if expr := p.parsePlaceable(); expr != nil {
					pat.Elements = append(pat.Elements, &ast.Placeable{Expression: expr})
				}
			case '}':
				p.errorf("unbalanced %q in pattern", "}")
				p.pos++
			default:
				text.WriteByte(p.peek())
				p.pos++
			}
		}
		mark := p.pos
		if p.peek() == '\r' {
			p.pos++
		}
		if p.peek() != '\n' {
			p.pos = mark
			break
		}
		p.pos++
		indentStart := p.pos
		p.skipInline()
		if p.pos == indentStart {
			// next line is not indented, so it starts a new entry
			p.pos = mark
			break
		}
		c := p.peek()
		if c == 0 || c == '\n' || c == '\r' || c == '.' || c == '[' || c == '*' || c == '}' {
			p.pos = mark
			break
		}
		if text.Len() > 0 || len(pat.Elements) > 0 {
			text.WriteByte('\n')
		}
	}
	flush()
	return pat
}

func (p *parser) parsePlaceable() ast.Expression {
	p.pos++ // '{'
	p.skipWhitespace()
	expr := p.parseInline()
	if expr == nil {
		p.recoverPlaceable()
		return nil
	}
	p.skipWhitespace()
	if p.peek() == '-' && p.at(1) == '>' {
		p.pos += 2
		sel := &ast.Select{Selector: expr}
		p.parseVariants(sel)
		expr = sel
	}
	p.skipWhitespace()
	if p.peek() != '}' {
		p.errorf("expected %q to close placeable", "}")
		p.recoverPlaceable()
		return expr
	}
	p.pos++
	return expr
}

// recoverPlaceable skips to the closing brace of the placeable being
// parsed, honoring nesting.
func (p *parser) recoverPlaceable() {
	depth := 1
	for !p.eof() {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return
			}
		}
		p.pos++
	}
}

func (p *parser) parseInline() ast.Expression {
	switch c := p.peek(); {
	case c == '$':
		p.pos++
		if !isIdentStart(p.peek()) {
			p.errorf("expected a variable name after %q", "$")
			return nil
		}
		return &ast.VariableReference{ID: p.parseIdentifier()}
	case c == '"':
		return p.parseStringLiteral()
	case c >= '0' && c <= '9':
		return p.parseNumberLiteral(false)
	case c == '-' && p.at(1) >= '0' && p.at(1) <= '9':
		p.pos++
		return p.parseNumberLiteral(true)
	case c == '-' && isIdentStart(p.at(1)):
		p.pos++
		ref := &ast.TermReference{ID: p.parseIdentifier()}
		if p.peek() == '.' && isIdentStart(p.at(1)) {
			p.pos++
			ref.Attribute = p.parseIdentifier()
		}
		if p.peek() == '(' {
			ref.Arguments = p.parseArguments()
		}
		return ref
	case c == '{':
		expr := p.parsePlaceable()
		if expr == nil {
			return nil
		}
		return &ast.Placeable{Expression: expr}
	case isIdentStart(c):
		id := p.parseIdentifier()
		if p.peek() == '(' {
			return &ast.FunctionReference{ID: id, Arguments: p.parseArguments()}
		}
		ref := &ast.MessageReference{ID: id}
		if p.peek() == '.' && isIdentStart(p.at(1)) {
			p.pos++
			ref.Attribute = p.parseIdentifier()
		}
		return ref
	default:
		p.errorf("expected an expression inside placeable")
		return nil
	}
}

func (p *parser) parseArguments() []ast.Expression {
	p.pos++ // '('
	var args []ast.Expression
	for {
		p.skipWhitespace()
		if p.peek() == ')' {
			p.pos++
			return args
		}
		if p.eof() {
			p.errorf("unterminated argument list")
			return args
		}
		if arg := p.parseArgument(); arg != nil {
			args = append(args, arg)
		} else {
			for !p.eof() && p.peek() != ')' && p.peek() != ',' {
				p.pos++
			}
		}
		p.skipWhitespace()
		if p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *parser) parseArgument() ast.Expression {
	if isIdentStart(p.peek()) {
		mark := p.pos
		id := p.parseIdentifier()
		p.skipWhitespace()
		if p.peek() == ':' {
			p.pos++
			p.skipWhitespace()
			value := p.parseInline()
			if value == nil {
				return nil
			}
			return &ast.NamedArgument{Name: id, Value: value}
		}
		p.pos = mark
	}
	return p.parseInline()
}

func (p *parser) parseStringLiteral() ast.Expression {
	p.pos++ // '"'
	var sb strings.Builder
	for !p.eof() {
		switch c := p.peek(); c {
		case '"':
			p.pos++
			return &ast.StringLiteral{Value: sb.String()}
		case '\n', '\r':
			p.errorf("unterminated string literal")
			return &ast.StringLiteral{Value: sb.String()}
		case '\\':
			p.pos++
			switch p.peek() {
			case '"':
				sb.WriteByte('"')
				p.pos++
			case '\\':
				sb.WriteByte('\\')
				p.pos++
			default:
				sb.WriteByte('\\')
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	p.errorf("unterminated string literal")
	return &ast.StringLiteral{Value: sb.String()}
}

func (p *parser) parseNumberLiteral(negative bool) ast.Expression {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.peek() == '.' && p.at(1) >= '0' && p.at(1) <= '9' {
		p.pos++
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
	}
	value := p.src[start:p.pos]
	if negative {
		value = "-" + value
	}
	return &ast.NumberLiteral{Value: value}
}

func (p *parser) parseVariants(sel *ast.Select) {
	for {
		p.skipWhitespace()
		if p.eof() {
			p.errorf("unterminated select expression")
			return
		}
		if p.peek() == '}' {
			break
		}
		def := false
		if p.peek() == '*' {
			def = true
			p.pos++
		}
		if p.peek() != '[' {
			p.errorf("expected %q to open a variant key", "[")
			p.skipToBrace()
			return
		}
		p.pos++
		key := p.parseVariantKey()
		if p.peek() != ']' {
			p.errorf("expected %q after variant key %q", "]", key)
			p.skipToBrace()
			return
		}
		p.pos++
		value := p.parsePattern()
		if len(value.Elements) == 0 {
			p.errorf("variant [%s] must have a value", key)
			continue
		}
		sel.Variants = append(sel.Variants, ast.Variant{Key: key, Default: def, Value: *value})
	}

	defaults := 0
	for _, v := range sel.Variants {
		if v.Default {
			defaults++
		}
	}
	if defaults != 1 {
		p.errorf("select expression must have exactly one default variant")
	}
}

// skipToBrace scans to the select expression's closing brace without
// consuming it, so the enclosing placeable can finish.
func (p *parser) skipToBrace() {
	for !p.eof() && p.peek() != '}' {
		p.pos++
	}
}

func (p *parser) parseVariantKey() string {
	p.skipInline()
	start := p.pos
	if isIdentStart(p.peek()) {
		p.parseIdentifier()
	} else {
		if p.peek() == '-' {
			p.pos++
		}
		for !p.eof() && (p.peek() >= '0' && p.peek() <= '9' || p.peek() == '.') {
			p.pos++
		}
	}
	key := p.src[start:p.pos]
	p.skipInline()
	if key == "" {
		p.errorf("empty variant key")
	}
	return key
}

func (p *parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		if p.peek() == '-' && p.at(1) == '>' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_'
}
