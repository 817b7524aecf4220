package bindgen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntry marks a reference to an entry no catalog defines.
	ErrUnknownEntry = errors.New("dependency on unknown localization entry")
	// ErrCycle marks a direct or indirect reference cycle between entries.
	ErrCycle = errors.New("cyclic localization reference")
)

// Resolve propagates variables and references along dependency edges until
// every node's requirements are transitively complete. Which pending
// dependency is processed first is unspecified; the propagation is
// confluent, so the final sets do not depend on the order.
//
// Termination is guaranteed for acyclic graphs. A cycle is caught before
// the loop can spin forever: substituting a cycle member's edges back into
// itself produces a self-dependency, which trips the check below.
func Resolve(nodes map[string]*Node) error {
	for {
		todo, ok := pickPending(nodes)
		if !ok {
			return nil
		}

		dep, ok := nodes[todo]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEntry, todo)
		}

		for name, node := range nodes {
			if _, wants := node.Dependencies[todo]; !wants {
				continue
			}
			if name == todo {
				return fmt.Errorf("%w: detected at entry %s", ErrCycle, name)
			}
			delete(node.Dependencies, todo)
			for v := range dep.Variables {
				node.Variables[v] = struct{}{}
			}
			for d := range dep.Dependencies {
				node.Dependencies[d] = struct{}{}
			}
		}
	}
}

func pickPending(nodes map[string]*Node) (string, bool) {
	for _, node := range nodes {
		for dep := range node.Dependencies {
			return dep, true
		}
	}
	return "", false
}
