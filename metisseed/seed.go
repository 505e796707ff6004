// Package metisseed produces an initial per-node ownership assignment by
// handing the mesh adjacency to METIS's k-way graph partitioner. The result
// is a convenience input to block.Separate — this package never touches
// block/owner/flag state itself, so the core partitioning engine has no
// dependency on METIS and works identically when seeded any other way.
package metisseed

import (
	"fmt"

	metis "github.com/notargets/go-metis"
	"github.com/pogo-fea/blocker/mesh"
)

// Seed builds the CSR (xadj/adjncy) form of adj and runs METIS_PartGraphKway
// to split it into nParts contiguous, roughly balanced parts. The returned
// owner slice is indexed by node id and is safe to pass straight to
// block.Separate.
func Seed(adj *mesh.Adjacency, nParts int) ([]int32, error) {
	if nParts <= 0 {
		return nil, fmt.Errorf("metisseed: nParts must be positive, got %d", nParts)
	}
	if nParts == 1 {
		owner := make([]int32, adj.N)
		return owner, nil
	}

	xadj := make([]int32, adj.N+1)
	var adjncy []int32
	for n := 0; n < adj.N; n++ {
		xadj[n] = int32(len(adjncy))
		for _, nb := range adj.Neighbors(n) {
			if nb < 0 {
				continue
			}
			adjncy = append(adjncy, int32(nb))
		}
	}
	xadj[adj.N] = int32(len(adjncy))

	owner := make([]int32, adj.N)
	options := metis.NewOptions()
	edgeCut, err := metis.PartGraphKway(
		int32(adj.N),
		1, // ncon: one balancing constraint (uniform vertex weight)
		xadj,
		adjncy,
		nil, // vwgt: unweighted vertices
		nil, // vsize: no communication-volume weighting
		nil, // adjwgt: unweighted edges
		int32(nParts),
		nil, // tpwgts: equal target part weights
		nil, // ubvec: default imbalance tolerance
		options,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("metisseed: METIS_PartGraphKway failed: %w", err)
	}
	_ = edgeCut

	return owner, nil
}
