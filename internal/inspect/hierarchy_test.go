package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxline/inspect/internal/registry"
)

// chain builds a parent chain from root-first names and returns the leaf.
func chain(names ...string) *registry.TypeNode {
	var parent *registry.TypeNode
	for _, name := range names {
		parent = &registry.TypeNode{Name: name, Parent: parent}
	}
	return parent
}

func TestLinearize_RootFirst(t *testing.T) {
	leaf := chain("FluxObject", "FluxElement", "FluxBaseSrc", "FluxFakeSrc")

	nodes := Linearize(leaf)
	require.Len(t, nodes, 4)

	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"FluxObject", "FluxElement", "FluxBaseSrc", "FluxFakeSrc"}, names)
}

func TestLinearize_ChainLength(t *testing.T) {
	// A chain of length N yields N+1 nodes, leaf included, no duplicates.
	for depth := 0; depth < 40; depth++ {
		names := make([]string, depth+1)
		for i := range names {
			names[i] = string(rune('A' + i%26))
		}
		nodes := Linearize(chain(names...))
		require.Len(t, nodes, depth+1, "depth %d", depth)

		seen := make(map[*registry.TypeNode]bool, len(nodes))
		for _, n := range nodes {
			assert.False(t, seen[n], "duplicate node at depth %d", depth)
			seen[n] = true
		}
	}
}

func TestLinearize_SingleRoot(t *testing.T) {
	root := &registry.TypeNode{Name: "FluxObject"}
	nodes := Linearize(root)
	require.Len(t, nodes, 1)
	assert.Same(t, root, nodes[0])
}

func TestLinearize_Nil(t *testing.T) {
	assert.Empty(t, Linearize(nil))
}
