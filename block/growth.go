package block

// AdvanceGreedy grows the block by one breadth layer, consuming free
// neighbors without competition. It processes the boundary list in
// insertion order as it stood when the call began; nodes appended during
// the pass are not revisited in the same call. Returns the number of nodes
// claimed, which is also stored in LastAdvance.
func (b *Block) AdvanceGreedy(p *Partition, maxAdd int) int {
	if !b.IsActive {
		return 0
	}

	nAdded := 0
	nBound := b.Boundary.Len()
	e := b.Boundary.Front()
	capHit := false

	for cnt := 0; cnt < nBound && e != nil; cnt++ {
		if (maxAdd > 0 && nAdded >= maxAdd) || (maxAdd != -2 && b.Size() >= b.MaxSize) {
			break
		}
		rec := e.Value.(NodeRecord)
		n := rec.NodeNum
		next := e.Next()

		if p.Flags[n] == FlagExhaustedBoundary {
			e = next
			continue
		}

		anyAdded := false
		for _, link := range p.Adj.Neighbors(n) {
			if p.Flags[link] != FlagFree {
				continue
			}
			p.Flags[link] = FlagBoundary
			p.Owner[link] = b.BlockNum
			b.Boundary.PushBack(NodeRecord{NodeNum: link})
			nAdded++
			anyAdded = true
			if (maxAdd > 0 && nAdded >= maxAdd) || (maxAdd != -2 && b.Size() >= b.MaxSize) {
				capHit = true
				break
			}
		}
		if !anyAdded {
			p.Flags[n] = FlagExhaustedBoundary
		}

		if !b.hasForeignOrFreeNeighbor(p, n) {
			p.Flags[n] = FlagInterior
			b.Boundary.Remove(e)
			b.Interior.PushBack(rec)
		}

		e = next
		if capHit || (maxAdd > 0 && nAdded >= maxAdd) || (maxAdd != -2 && b.Size() >= b.MaxSize) {
			break
		}
	}

	_ = b.TidyBoundaries(p)
	b.LastAdvance = nAdded
	return nAdded
}

// hasForeignOrFreeNeighbor reports whether node n, currently owned by b,
// still has a neighbor not owned by b (free counts as not owned by b since
// Owner[free] == -1).
func (b *Block) hasForeignOrFreeNeighbor(p *Partition, n int) bool {
	for _, link := range p.Adj.Neighbors(n) {
		if p.Owner[link] != b.BlockNum {
			return true
		}
	}
	return false
}

// Advance grows the block like AdvanceGreedy, but when greedy is false each
// candidate free neighbor is checked for contention: if any of its own
// neighbors is owned by a different *active* block, the candidate is marked
// AMBIGUOUS and appended (deduplicated by node id) to ambiguous instead of
// being claimed.
func (b *Block) Advance(p *Partition, ambiguous *[]NodeRecord, greedy bool, maxAdd int) int {
	if !b.IsActive {
		return 0
	}

	nAdded := 0
	nBound := b.Boundary.Len()
	e := b.Boundary.Front()
	capHit := false

	for cnt := 0; cnt < nBound && e != nil; cnt++ {
		rec := e.Value.(NodeRecord)
		n := rec.NodeNum
		next := e.Next()

		for _, link := range p.Adj.Neighbors(n) {
			if p.Flags[link] != FlagFree {
				continue
			}
			singleLink := true
			if !greedy {
				for _, linkIn := range p.Adj.Neighbors(link) {
					linkBlock := p.Owner[linkIn]
					linkActive := linkBlock >= 0 && p.Blocks[linkBlock].IsActive
					if p.Flags[linkIn] != FlagFree && linkBlock != b.BlockNum && linkActive {
						singleLink = false
						break
					}
				}
			}
			if singleLink {
				p.Flags[link] = FlagBoundary
				p.Owner[link] = b.BlockNum
				b.Boundary.PushBack(NodeRecord{NodeNum: link})
				nAdded++
				if (maxAdd > 0 && nAdded >= maxAdd) || (maxAdd != -2 && b.Size() >= b.MaxSize) {
					capHit = true
					break
				}
			} else {
				p.Flags[link] = FlagAmbiguous
				already := false
				for _, a := range *ambiguous {
					if a.NodeNum == link {
						already = true
						break
					}
				}
				if !already {
					*ambiguous = append(*ambiguous, NodeRecord{NodeNum: link})
				}
			}
		}

		if !b.hasForeignOrFreeNeighbor(p, n) {
			p.Flags[n] = FlagInterior
			b.Boundary.Remove(e)
			b.Interior.PushBack(rec)
		}

		e = next
		if capHit {
			break
		}
	}

	_ = b.TidyBoundaries(p)
	b.LastAdvance = nAdded
	return nAdded
}

// GenNewBlock seeds a fresh block from the current block's boundary: for
// each free neighbor of a boundary node it performs the same contention
// check as Advance's non-greedy path against both b and the candidate new
// block, claiming into the new block only when unambiguous. b is
// deactivated afterward and the parent/child lineage is recorded. The new
// block is appended to p.Blocks regardless of whether anything was claimed;
// Child is left at -1 if it ended up empty.
func (b *Block) GenNewBlock(p *Partition) *Block {
	if !b.IsActive {
		return nil
	}

	newB := newBlock(len(p.Blocks), p.Cfg.MaxSize())

	for e := b.Boundary.Front(); e != nil; e = e.Next() {
		rec := e.Value.(NodeRecord)
		n := rec.NodeNum
		for _, link := range p.Adj.Neighbors(n) {
			if p.Flags[link] != FlagFree {
				continue
			}
			singleLink := true
			for _, linkIn := range p.Adj.Neighbors(link) {
				if linkIn < 0 {
					continue
				}
				if p.Flags[linkIn] != FlagFree &&
					p.Owner[linkIn] != b.BlockNum && p.Owner[linkIn] != newB.BlockNum {
					singleLink = false
					break
				}
			}
			if singleLink {
				p.Flags[link] = FlagBoundary
				p.Owner[link] = newB.BlockNum
				newB.Boundary.PushBack(NodeRecord{NodeNum: link})
			}
		}
	}

	newB.Parent = b.BlockNum
	b.Child = newB.BlockNum
	if newB.Size() == 0 {
		b.Child = -1
	}
	b.IsActive = false

	p.Blocks = append(p.Blocks, newB)
	p.log("gen_new_block", "parent", b.BlockNum, "child", newB.BlockNum, "size", newB.Size())
	return newB
}
