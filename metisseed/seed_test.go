package metisseed

import (
	"testing"

	"github.com/pogo-fea/blocker/block"
	"github.com/pogo-fea/blocker/blockcfg"
	"github.com/pogo-fea/blocker/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRejectsNonPositiveParts(t *testing.T) {
	adj := mesh.NewGridAdjacency(4, 4)
	_, err := Seed(adj, 0)
	require.Error(t, err)
}

func TestSeedSinglePartAssignsAllToPartZero(t *testing.T) {
	adj := mesh.NewGridAdjacency(4, 4)
	owner, err := Seed(adj, 1)
	require.NoError(t, err)
	require.Len(t, owner, adj.N)
	for _, o := range owner {
		assert.Equal(t, int32(0), o)
	}
}

// TestSeedOwnerAcceptedBySeparate confirms METIS's k-way cut over a 4x4 grid
// produces an owner[] that block.Separate accepts without a 2409
// out-of-range error.
func TestSeedOwnerAcceptedBySeparate(t *testing.T) {
	adj := mesh.NewGridAdjacency(4, 4)
	owner32, err := Seed(adj, 4)
	require.NoError(t, err)

	owner := make([]int, len(owner32))
	for i, o := range owner32 {
		owner[i] = int(o)
	}

	p, err := block.Separate(adj, owner, blockcfg.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, p.Blocks)
}
