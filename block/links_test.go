package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLinksSeversStaleBackPointer(t *testing.T) {
	p := gridPartition(t)
	a := newBlock(0, p.Cfg.MaxSize())
	b := newBlock(1, p.Cfg.MaxSize())
	p.Blocks = []*Block{a, b}

	// a and b are not physically adjacent (disjoint node sets, no shared edge)
	// but a.Next claims otherwise.
	for _, n := range []int{0, 1} {
		p.Owner[n] = 0
		a.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	for _, n := range []int{10, 11} {
		p.Owner[n] = 1
		b.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	require.NoError(t, a.TidyBoundaries(p))
	require.NoError(t, b.TidyBoundaries(p))
	a.Next = 1
	b.Prev = 0

	ok := a.CheckLinks(p)
	assert.False(t, ok)
	assert.Equal(t, -1, a.Next)
	assert.Equal(t, -1, b.Prev)
}

func TestDeactivateRelinkSplicesAdjacentNeighbors(t *testing.T) {
	p := gridPartition(t)
	a := newBlock(0, p.Cfg.MaxSize())
	mid := newBlock(1, p.Cfg.MaxSize())
	c := newBlock(2, p.Cfg.MaxSize())
	p.Blocks = []*Block{a, mid, c}

	for _, n := range []int{0, 1} {
		p.Owner[n] = 0
		a.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	for _, n := range []int{8, 9} {
		p.Owner[n] = 1
		mid.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	// c is physically adjacent to a (node 2 neighbors node 1) even though mid
	// sits between them in the chain; DeactivateRelink should find that
	// direct adjacency and splice a<->c.
	for _, n := range []int{2, 3} {
		p.Owner[n] = 2
		c.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	require.NoError(t, a.TidyBoundaries(p))
	require.NoError(t, mid.TidyBoundaries(p))
	require.NoError(t, c.TidyBoundaries(p))
	a.Next, mid.Prev, mid.Next, c.Prev = 1, 0, 2, 1

	relinked := mid.DeactivateRelink(p)
	assert.True(t, relinked)
	assert.False(t, mid.IsActive)
	assert.Equal(t, 2, a.Next)
	assert.Equal(t, 0, c.Prev)
}

func TestDeactivateRelinkSeversWhenNotAdjacent(t *testing.T) {
	p := gridPartition(t)
	a := newBlock(0, p.Cfg.MaxSize())
	mid := newBlock(1, p.Cfg.MaxSize())
	c := newBlock(2, p.Cfg.MaxSize())
	p.Blocks = []*Block{a, mid, c}

	for _, n := range []int{0, 1} {
		p.Owner[n] = 0
		a.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	for _, n := range []int{5} {
		p.Owner[n] = 1
		mid.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	for _, n := range []int{15} {
		p.Owner[n] = 2
		c.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	require.NoError(t, a.TidyBoundaries(p))
	require.NoError(t, mid.TidyBoundaries(p))
	require.NoError(t, c.TidyBoundaries(p))
	a.Next, mid.Prev, mid.Next, c.Prev = 1, 0, 2, 1

	relinked := mid.DeactivateRelink(p)
	assert.False(t, relinked)
	assert.Equal(t, -1, a.Next)
	assert.Equal(t, -1, c.Prev)
	assert.Equal(t, -1, mid.Prev)
	assert.Equal(t, -1, mid.Next)
}
