// Package bindgen turns the default-tier catalogs into generated Go
// bindings: it builds a dependency graph over entries, resolves variable
// requirements transitively, and emits one typed accessor per message.
package bindgen

import (
	"errors"
	"fmt"

	"fluentloc/pkg/loader"
	"fluentloc/pkg/syntax/ast"
)

var (
	// ErrDuplicateEntry marks an entry name defined twice across the
	// scanned catalogs.
	ErrDuplicateEntry = errors.New("duplicate entry name")
	// ErrUnsupportedFunction marks a function reference inside a pattern.
	ErrUnsupportedFunction = errors.New("function references are not supported")
)

// Node tracks one catalog entry's direct and, after resolution,
// transitive requirements.
type Node struct {
	Category     string
	Name         string
	Term         bool
	Variables    map[string]struct{}
	Dependencies map[string]struct{}
}

func newNode(category, name string, term bool) *Node {
	return &Node{
		Category:     category,
		Name:         name,
		Term:         term,
		Variables:    make(map[string]struct{}),
		Dependencies: make(map[string]struct{}),
	}
}

// BuildGraph creates one node per message-with-value or term across all
// resources, recording the variables and entry references each pattern
// uses directly. Messages without a value (attributes only) produce no
// node.
func BuildGraph(resources []loader.Resource) (map[string]*Node, error) {
	nodes := make(map[string]*Node)
	for _, res := range resources {
		for _, entry := range res.AST.Entries {
			var (
				name    string
				pattern *ast.Pattern
				term    bool
			)
			switch e := entry.(type) {
			case *ast.Message:
				if e.Value == nil {
					continue
				}
				name, pattern = e.ID, e.Value
			case *ast.Term:
				name, pattern, term = e.ID, &e.Value, true
			default:
				continue
			}

			if _, exists := nodes[name]; exists {
				return nil, fmt.Errorf("%w: %s redefined in catalog %s", ErrDuplicateEntry, name, res.Name)
			}

			node := newNode(res.Name, name, term)
			if err := scanPattern(pattern, node); err != nil {
				return nil, err
			}
			nodes[name] = node
		}
	}
	return nodes, nil
}

func scanPattern(p *ast.Pattern, node *Node) error {
	for _, el := range p.Elements {
		// Fixed text contributes nothing; only placeables are dynamic.
		pl, ok := el.(*ast.Placeable)
		if !ok {
			continue
		}
		if err := scanExpression(pl.Expression, node); err != nil {
			return err
		}
	}
	return nil
}

func scanExpression(expr ast.Expression, node *Node) error {
	switch e := expr.(type) {
	case *ast.Select:
		// The select introduces no entry, but the selector and every
		// variant branch must be scanned.
		if err := scanExpression(e.Selector, node); err != nil {
			return err
		}
		for i := range e.Variants {
			if err := scanPattern(&e.Variants[i].Value, node); err != nil {
				return err
			}
		}
	case *ast.VariableReference:
		node.Variables[e.ID] = struct{}{}
	case *ast.MessageReference:
		node.Dependencies[e.ID] = struct{}{}
	case *ast.TermReference:
		node.Dependencies[e.ID] = struct{}{}
	case *ast.FunctionReference:
		return fmt.Errorf("%w: %s() referenced from entry %s", ErrUnsupportedFunction, e.ID, node.Name)
	case *ast.Placeable:
		return scanExpression(e.Expression, node)
	case *ast.StringLiteral, *ast.NumberLiteral:
		// literals contribute nothing
	}
	return nil
}
