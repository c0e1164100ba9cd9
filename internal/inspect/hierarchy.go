package inspect

import "github.com/fluxline/inspect/internal/registry"

// Linearize walks the parent chain of leaf and returns it root-first,
// leaf-last. A chain of length N yields N+1 nodes with no duplicates; the
// type system guarantees the chain is finite and acyclic.
func Linearize(leaf *registry.TypeNode) []*registry.TypeNode {
	if leaf == nil {
		return nil
	}
	return append(Linearize(leaf.Parent), leaf)
}
