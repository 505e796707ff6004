package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraseFreesExactOwnedNodes(t *testing.T) {
	p := gridPartition(t)
	b := seedBlock(p, 5)
	for _, n := range []int{1, 4, 6, 9} {
		p.Owner[n] = b.BlockNum
		p.Flags[n] = FlagBoundary
		b.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	require.NoError(t, b.TidyBoundaries(p))

	b.Erase(p)
	for _, n := range []int{5, 1, 4, 6, 9} {
		assert.Equal(t, -1, p.Owner[n])
		assert.Equal(t, FlagFree, p.Flags[n])
	}
	assert.Equal(t, 0, b.Size())
}

func TestRenumberUpdatesOwnerArray(t *testing.T) {
	p := gridPartition(t)
	b := seedBlock(p, 5)
	for _, n := range []int{1, 4, 6, 9} {
		p.Owner[n] = b.BlockNum
		b.Boundary.PushBack(NodeRecord{NodeNum: n})
	}

	b.Renumber(p, 7)
	assert.Equal(t, 7, b.BlockNum)
	for _, n := range []int{5, 1, 4, 6, 9} {
		assert.Equal(t, 7, p.Owner[n])
	}
}

func TestCombineFromMergesAndTakesMaxModifiedTimes(t *testing.T) {
	p := gridPartition(t)
	a := seedBlock(p, 5)
	a.ModifiedTimes = 2
	c := newBlock(1, p.Cfg.MaxSize())
	c.ModifiedTimes = 9
	p.Blocks = append(p.Blocks, c)
	for _, n := range []int{1, 4} {
		p.Owner[n] = c.BlockNum
		c.Boundary.PushBack(NodeRecord{NodeNum: n})
	}

	require.NoError(t, a.CombineFrom(p, c))
	assert.Equal(t, 9, a.ModifiedTimes)
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, 0, c.Size())
	for _, n := range []int{5, 1, 4} {
		assert.Equal(t, a.BlockNum, p.Owner[n])
	}
}

func TestJoinCompactsLastBlockIntoFreedSlot(t *testing.T) {
	p := gridPartition(t)
	a := newBlock(0, p.Cfg.MaxSize())
	b := newBlock(1, p.Cfg.MaxSize())
	c := newBlock(2, p.Cfg.MaxSize())
	p.Blocks = []*Block{a, b, c}

	for _, n := range []int{0, 1} {
		p.Owner[n] = 0
		a.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	for _, n := range []int{2, 3} {
		p.Owner[n] = 1
		b.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	for _, n := range []int{8, 9} {
		p.Owner[n] = 2
		c.Boundary.PushBack(NodeRecord{NodeNum: n})
	}
	a.Next, b.Prev, b.Next, c.Prev = 1, 0, -1, -1

	// Joining b (index 1, the last block's neighbor) should merge b into a and
	// move c (the last block) into slot 1, renumbering it.
	result := p.Join(1)
	require.Len(t, p.Blocks, 2)
	require.NotEqual(t, -1, result)

	merged := p.Blocks[0]
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true, 3: true}, nodeSet(merged))

	moved := p.Blocks[1]
	assert.Equal(t, 1, moved.BlockNum)
	for _, n := range []int{8, 9} {
		assert.Equal(t, 1, p.Owner[n])
	}
}
