package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckPhysicalAdjacencyAgreesWithGetLinks cross-checks the independent
// gonum-graph-walking adjacency test against GetLinks' flat-matrix walk on
// both an adjacent pair and a non-adjacent pair of blocks carved out of the
// same 4x4 grid, so a bug in one representation can't silently agree with a
// bug in the other.
func TestCheckPhysicalAdjacencyAgreesWithGetLinks(t *testing.T) {
	p := gridPartition(t)
	a := newBlock(0, p.Cfg.MaxSize())  // top-left quad
	b := newBlock(1, p.Cfg.MaxSize())  // top-right quad, adjacent to a
	c := newBlock(2, p.Cfg.MaxSize())  // bottom-left quad, not adjacent to b
	p.Blocks = []*Block{a, b, c}

	assign := func(blk *Block, nodes ...int) {
		for _, n := range nodes {
			p.Owner[n] = blk.BlockNum
			p.Flags[n] = FlagBoundary
			blk.Boundary.PushBack(NodeRecord{NodeNum: n})
		}
	}
	assign(a, 0, 1, 4, 5)
	assign(b, 2, 3, 6, 7)
	assign(c, 8, 9, 12, 13)
	for _, blk := range p.Blocks {
		require.NoError(t, blk.TidyBoundaries(p))
	}

	g := p.Adj.ToGonumGraph()

	aLinksB := false
	for _, l := range a.GetLinks(p) {
		if l == b.BlockNum {
			aLinksB = true
		}
	}
	assert.True(t, aLinksB, "GetLinks should find a and b physically adjacent")
	assert.True(t, p.CheckPhysicalAdjacency(g, a.BlockNum, b.BlockNum),
		"CheckPhysicalAdjacency should agree that a and b are adjacent")

	cLinksB := false
	for _, l := range c.GetLinks(p) {
		if l == b.BlockNum {
			cLinksB = true
		}
	}
	assert.False(t, cLinksB, "GetLinks should find b and c not physically adjacent")
	assert.False(t, p.CheckPhysicalAdjacency(g, c.BlockNum, b.BlockNum),
		"CheckPhysicalAdjacency should agree that b and c are not adjacent")
}

// TestCheckPhysicalAdjacencyOnSplitScenario wires the cross-check into the
// split scenario: the two sub-blocks Split produces from a contiguous strip
// must be physically adjacent by both measures.
func TestCheckPhysicalAdjacencyOnSplitScenario(t *testing.T) {
	p := gridPartition(t)
	b := newBlock(0, p.Cfg.MaxSize())
	p.Blocks = append(p.Blocks, b)
	for n := 0; n <= 7; n++ {
		p.Owner[n] = 0
		p.Flags[n] = FlagBoundary
		b.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	require.NoError(t, b.TidyBoundaries(p))

	newIdx, err := p.Split(0)
	require.NoError(t, err)

	self := p.Blocks[0]
	other := p.Blocks[newIdx]
	g := p.Adj.ToGonumGraph()

	assert.True(t, p.CheckPhysicalAdjacency(g, self.BlockNum, other.BlockNum),
		"the two halves of a split contiguous strip must remain physically adjacent")
}
