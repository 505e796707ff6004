package gpulayout

import (
	"testing"

	"github.com/pogo-fea/blocker/block"
	"github.com/pogo-fea/blocker/blockcfg"
	"github.com/pogo-fea/blocker/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExportRejectsBrokenChain builds a partition with two active blocks that
// were never linked (both Prev == -1, as block.Separate leaves them), and
// checks Export fails with ErrChainNotClosed before ever touching the device.
func TestExportRejectsBrokenChain(t *testing.T) {
	adj := mesh.NewGridAdjacency(4, 4)
	owner := make([]int, adj.N)
	for n := range owner {
		if n < 8 {
			owner[n] = 0
		} else {
			owner[n] = 1
		}
	}

	p, err := block.Separate(adj, owner, blockcfg.Default())
	require.NoError(t, err)
	require.Len(t, p.Blocks, 2)
	assert.Equal(t, -1, p.Blocks[0].Prev)
	assert.Equal(t, -1, p.Blocks[1].Prev)

	_, err = Export(nil, p.Blocks)
	require.ErrorIs(t, err, ErrChainNotClosed)
}

func TestExportEmptyChainProducesEmptyLayout(t *testing.T) {
	layout, err := Export(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, layout.BlockOffsets)
}
