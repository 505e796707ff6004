package mesh

import (
	"fmt"

	gocfdreaders "github.com/notargets/gocfd/DG3D/mesh/readers"
)

// LoadFromGocfd reads a mesh file (.neu, .msh, or .su2) through gocfd's mesh
// reader and derives node-to-node adjacency from element membership: two
// nodes are neighbors iff they co-occur in at least one element. This is the
// external mesh-loading collaborator the block engine's own spec places out
// of scope — this package owns the boundary, the engine never touches
// gocfd's types.
//
// dMax bounds the degree of the returned adjacency; a node whose true degree
// exceeds dMax is a load-time error, since the engine's precondition
// (deg(n) <= D_max) must hold before any block primitive runs.
func LoadFromGocfd(path string, dMax int) (*Adjacency, error) {
	m, err := gocfdreaders.ReadMeshFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: reading %s: %w", path, err)
	}
	if m.NumVertices == 0 {
		return nil, fmt.Errorf("mesh: reading %s: %w", path, ErrEmptyAdjacency)
	}

	adj, err := adjacencyFromElements(m.NumVertices, m.EtoV, dMax)
	if err != nil {
		return nil, fmt.Errorf("mesh: building adjacency from %s: %w", path, err)
	}
	return adj, nil
}

// adjacencyFromElements derives node-to-node adjacency from element
// membership: two nodes are neighbors iff they co-occur in at least one
// element. Split out from LoadFromGocfd so the co-occurrence rule itself can
// be exercised directly against a hand-built element list, without a real
// mesh file on disk.
func adjacencyFromElements(numVertices int, elements [][]int, dMax int) (*Adjacency, error) {
	adj := NewAdjacency(numVertices, dMax)
	for _, elem := range elements {
		for i := 0; i < len(elem); i++ {
			for j := i + 1; j < len(elem); j++ {
				if err := adj.AddEdge(elem[i], elem[j]); err != nil {
					return nil, fmt.Errorf("node %d or %d: %w", elem[i], elem[j], err)
				}
			}
		}
	}
	return adj, nil
}
