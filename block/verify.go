package block

import "gonum.org/v1/gonum/graph"

// Verify checks a single block's invariants: BlockNum names the block's own
// slot in Blocks, every listed node's Owner and Flag agree with membership in
// this block, no node appears on both lists, the list-derived size matches a
// direct scan of Owner, Prev/Next are in range and mutually consistent, and
// both links (when present) correspond to an actual physically-adjacent
// block per GetLinks. It does not check that each node sits on the list its
// neighbors call for (interior nodes with a foreign or free neighbor, or
// boundary nodes with none, pass). A failure logs a diagnostic and returns
// false rather than panicking, since verification runs against state that
// may be mid-repair.
func (b *Block) Verify(p *Partition) bool {
	if b.BlockNum < 0 || b.BlockNum >= len(p.Blocks) || p.Blocks[b.BlockNum] != b {
		p.log("verify: block number does not match its slot", "block", b.BlockNum)
		return false
	}

	for e := b.Interior.Front(); e != nil; e = e.Next() {
		n := e.Value.(NodeRecord).NodeNum
		if p.Owner[n] != b.BlockNum || p.Flags[n] == FlagFree {
			p.log("verify: interior node inconsistent with owner/flag", "block", b.BlockNum, "node", n)
			return false
		}
	}

	for e := b.Boundary.Front(); e != nil; e = e.Next() {
		n := e.Value.(NodeRecord).NodeNum
		if p.Owner[n] != b.BlockNum || p.Flags[n] == FlagFree {
			p.log("verify: boundary node inconsistent with owner/flag", "block", b.BlockNum, "node", n)
			return false
		}
		for e2 := b.Interior.Front(); e2 != nil; e2 = e2.Next() {
			if e2.Value.(NodeRecord).NodeNum == n {
				p.log("verify: node present on both interior and boundary lists", "block", b.BlockNum, "node", n)
				return false
			}
		}
	}

	counted := 0
	for n := 0; n < p.Adj.N; n++ {
		if p.Owner[n] == b.BlockNum {
			counted++
		}
	}
	if counted != b.Size() {
		p.log("verify: owner-array count disagrees with list size",
			"block", b.BlockNum, "list_size", b.Size(), "owner_count", counted)
		return false
	}

	nBlocks := len(p.Blocks)
	if b.Next < -1 || b.Prev < -1 || b.Next > nBlocks-1 || b.Prev > nBlocks-1 {
		p.log("verify: prev/next out of range", "block", b.BlockNum, "prev", b.Prev, "next", b.Next)
		return false
	}
	if b.Next != -1 && p.Blocks[b.Next].Prev != b.BlockNum {
		p.log("verify: next block's prev doesn't point back", "block", b.BlockNum, "next", b.Next)
		return false
	}
	if b.Prev != -1 && p.Blocks[b.Prev].Next != b.BlockNum {
		p.log("verify: prev block's next doesn't point back", "block", b.BlockNum, "prev", b.Prev)
		return false
	}

	linkSet := make(map[int]bool)
	for _, l := range b.GetLinks(p) {
		linkSet[l] = true
	}
	nextLinked := b.Next == -1 || linkSet[b.Next]
	prevLinked := b.Prev == -1 || linkSet[b.Prev]
	if !nextLinked {
		p.log("verify: next block not physically adjacent", "block", b.BlockNum, "next", b.Next)
	}
	if !prevLinked {
		p.log("verify: prev block not physically adjacent", "block", b.BlockNum, "prev", b.Prev)
	}
	return nextLinked && prevLinked
}

// CheckPhysicalAdjacency is a second, independently-computed opinion on
// whether blocks a and b share a physical edge, walking a gonum graph mirror
// of the adjacency (see mesh.Adjacency.ToGonumGraph) instead of the flat
// matrix GetLinks reads directly. It exists to cross-check the engine's own
// bookkeeping in tests, not as a hot-path primitive.
func (p *Partition) CheckPhysicalAdjacency(g graph.Undirected, a, b int) bool {
	if a < 0 || b < 0 {
		return true
	}
	ba, bb := p.Blocks[a], p.Blocks[b]
	for e := ba.Boundary.Front(); e != nil; e = e.Next() {
		n := int64(e.Value.(NodeRecord).NodeNum)
		for e2 := bb.Boundary.Front(); e2 != nil; e2 = e2.Next() {
			m := int64(e2.Value.(NodeRecord).NodeNum)
			if g.HasEdgeBetween(n, m) {
				return true
			}
		}
	}
	return false
}
