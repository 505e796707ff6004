package block

// Minimise reduces the block to its skin: all interior nodes are freed, and
// boundary nodes are kept only if they have at least one neighbor owned by
// an inactive block. Used to prepare a block for regrowth around frozen
// neighbors.
func (b *Block) Minimise(p *Partition) {
	if !b.IsActive {
		return
	}

	for e := b.Interior.Front(); e != nil; e = e.Next() {
		n := e.Value.(NodeRecord).NodeNum
		p.Owner[n] = -1
		p.Flags[n] = FlagFree
	}
	b.Interior.Init()

	e := b.Boundary.Front()
	for e != nil {
		next := e.Next()
		n := e.Value.(NodeRecord).NodeNum

		inactiveLinked := false
		for _, link := range p.Adj.Neighbors(n) {
			bl := p.Owner[link]
			if bl >= 0 && !p.Blocks[bl].IsActive {
				inactiveLinked = true
				break
			}
		}

		if !inactiveLinked {
			p.Owner[n] = -1
			p.Flags[n] = FlagFree
			b.Boundary.Remove(e)
		} else {
			p.Flags[n] = FlagBoundary
		}
		e = next
	}
}

// Erase releases every node owned by the block and clears both lists. The
// original reference clears flag[n-1] for boundary nodes, an off-by-one
// bug; this implementation clears flag[n] as SPEC_FULL.md requires.
func (b *Block) Erase(p *Partition) {
	for e := b.Interior.Front(); e != nil; e = e.Next() {
		n := e.Value.(NodeRecord).NodeNum
		p.Owner[n] = -1
		p.Flags[n] = FlagFree
	}
	for e := b.Boundary.Front(); e != nil; e = e.Next() {
		n := e.Value.(NodeRecord).NodeNum
		p.Owner[n] = -1
		p.Flags[n] = FlagFree
	}
	b.Interior.Init()
	b.Boundary.Init()
}

// Renumber sets BlockNum and updates Owner[] for every node currently in
// either list.
func (b *Block) Renumber(p *Partition, newID int) {
	b.BlockNum = newID
	for e := b.Interior.Front(); e != nil; e = e.Next() {
		p.Owner[e.Value.(NodeRecord).NodeNum] = newID
	}
	for e := b.Boundary.Front(); e != nil; e = e.Next() {
		p.Owner[e.Value.(NodeRecord).NodeNum] = newID
	}
}

// CombineFrom moves other's nodes into b, retags their Owner to b, takes
// max(ModifiedTimes), then tidies. other is left with empty lists but is
// not removed from the block vector.
func (b *Block) CombineFrom(p *Partition, other *Block) error {
	if other.ModifiedTimes > b.ModifiedTimes {
		b.ModifiedTimes = other.ModifiedTimes
	}

	for e := other.Interior.Front(); e != nil; e = e.Next() {
		p.Owner[e.Value.(NodeRecord).NodeNum] = b.BlockNum
	}
	for e := other.Boundary.Front(); e != nil; e = e.Next() {
		p.Owner[e.Value.(NodeRecord).NodeNum] = b.BlockNum
	}

	b.Interior.PushBackList(other.Interior)
	b.Boundary.PushBackList(other.Boundary)
	other.Interior.Init()
	other.Boundary.Init()

	return b.TidyBoundaries(p)
}

// Join merges the block at selfIdx into a neighbor and compacts the block
// vector by moving the last block into the freed slot. Returns the
// (possibly renumbered) target block index, or -1 if no viable target
// exists (self is deactivated in that case).
func (p *Partition) Join(selfIdx int) int {
	self := p.Blocks[selfIdx]

	joinBlock := -1
	bothNext := -1
	bothPrev := -1

	if self.Next != -1 {
		joinBlock = self.Next
		bothNext = p.Blocks[joinBlock].Next
		bothPrev = self.Prev
	} else if self.Prev != -1 {
		joinBlock = self.Prev
		bothPrev = p.Blocks[joinBlock].Prev
		bothNext = self.Next
	}

	if joinBlock == -1 {
		for _, link := range self.GetLinks(p) {
			cand := p.Blocks[link]
			if cand.IsActive && (cand.Prev == -1 || cand.Next == -1) {
				joinBlock = link
				break
			}
		}
		if joinBlock == -1 {
			p.log("join: no target found", "block", selfIdx)
			self.IsActive = false
			return -1
		}
		target := p.Blocks[joinBlock]
		if target.Prev == -1 {
			bothPrev = -1
			bothNext = target.Next
		} else {
			bothPrev = target.Prev
			bothNext = -1
		}
	}

	if bothPrev == selfIdx || bothPrev == joinBlock {
		bothPrev = -1
	}
	if bothNext == selfIdx || bothNext == joinBlock {
		bothNext = -1
	}

	self.ModifiedTimes++
	target := p.Blocks[joinBlock]
	_ = target.CombineFrom(p, self)

	p.log("join", "from", selfIdx, "to", joinBlock, "num_blocks", len(p.Blocks))

	if bothNext == joinBlock {
		bothNext = -1
	}
	if bothPrev == joinBlock {
		bothPrev = -1
	}
	target.Next = bothNext
	target.Prev = bothPrev
	if bothNext >= 0 {
		p.Blocks[bothNext].Prev = joinBlock
	}
	if bothPrev >= 0 {
		p.Blocks[bothPrev].Next = joinBlock
	}

	return p.compactAfterJoin(selfIdx, joinBlock, target)
}

// compactAfterJoin fills the slot vacated at selfIdx by moving the last
// block into it, per spec.md's vector-compaction contract, and returns
// target's final index (which may equal selfIdx if target itself was the
// last block).
func (p *Partition) compactAfterJoin(selfIdx, joinBlock int, target *Block) int {
	lastIdx := len(p.Blocks) - 1
	if selfIdx == lastIdx {
		p.Blocks = p.Blocks[:lastIdx]
		return joinBlock
	}

	last := p.Blocks[lastIdx]
	movedIsTarget := last == target

	p.Blocks[selfIdx] = last
	last.Renumber(p, selfIdx)
	if last.Next >= 0 {
		p.Blocks[last.Next].Prev = selfIdx
	}
	if last.Prev >= 0 {
		p.Blocks[last.Prev].Next = selfIdx
	}
	p.Blocks = p.Blocks[:lastIdx]

	if movedIsTarget {
		return selfIdx
	}
	return joinBlock
}
