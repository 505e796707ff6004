package block

import "github.com/pogo-fea/blocker/blockerr"

// DepthInBlock runs a multi-source BFS constrained to nodes owned by b.
// depths must be caller-initialized (0 = unvisited, 1 = seed) and is
// Partition.Scratch in every call site in this package, reused across
// calls to avoid per-call allocation. Returns the final frontier depth and
// the last node assigned a depth.
func (b *Block) DepthInBlock(p *Partition, depths []int) (maxDepth, deepNode int) {
	currDepth := 1
	deepNode = -1
	maxRounds := 2 * p.Adj.N

	for round := 0; round < maxRounds; round++ {
		nextDepth := currDepth + 1
		updated := 0

		for e := b.Interior.Front(); e != nil; e = e.Next() {
			n := e.Value.(NodeRecord).NodeNum
			if depths[n] != currDepth {
				continue
			}
			for _, link := range p.Adj.Neighbors(n) {
				if depths[link] == 0 && p.Owner[link] == b.BlockNum {
					depths[link] = nextDepth
					deepNode = link
					updated++
				}
			}
		}
		for e := b.Boundary.Front(); e != nil; e = e.Next() {
			n := e.Value.(NodeRecord).NodeNum
			if depths[n] != currDepth {
				continue
			}
			for _, link := range p.Adj.Neighbors(n) {
				if depths[link] == 0 && p.Owner[link] == b.BlockNum {
					depths[link] = nextDepth
					deepNode = link
					updated++
				}
			}
		}

		if updated == 0 {
			break
		}
		currDepth = nextDepth
	}

	return currDepth, deepNode
}

// FindFurthest runs the double-sweep pseudo-peripheral search from
// startNode: repeatedly re-seed depth projection from the deepest node
// found, tracking the last two seeds until both stabilize across
// consecutive iterations or Cfg.FindFurthestMaxIterations is reached.
func (b *Block) FindFurthest(p *Partition, startNode int) ([2]int, error) {
	deepLoc := [2]int{-1, -1}
	var isGood [2]bool
	currNode := startNode
	depths := p.Scratch

	for cnt := 0; cnt < p.Cfg.FindFurthestMaxIterations; cnt++ {
		for i := range depths {
			depths[i] = 0
		}
		depths[currNode] = 1

		maxDepth, deepestNode := b.DepthInBlock(p, depths)
		if deepestNode == -1 {
			return deepLoc, blockerr.New("split", blockerr.CodeSplitNoMaxDepth,
				"no maximum depth found in block %d", b.BlockNum)
		}
		if maxDepth == 1 {
			return deepLoc, blockerr.New("split", blockerr.CodeSplitDepthOne,
				"max depth == 1 (starting depth) in block %d", b.BlockNum)
		}

		idx := cnt % 2
		if deepLoc[idx] == deepestNode {
			isGood[idx] = true
			if isGood[(idx+1)%2] {
				break
			}
		} else {
			isGood[idx] = false
		}
		deepLoc[idx] = deepestNode
		currNode = deepestNode
	}

	return deepLoc, nil
}

// Split partitions self into two blocks along a pseudo-diameter: it finds a
// starting node with a co-owned neighbor, locates the two most distant nodes
// reachable from it via FindFurthest, then grows two sub-blocks outward from
// those seeds in alternation (always extending whichever is currently
// smaller) until every node originally owned by self has been claimed.
//
// One sub-block's identity replaces self in place at selfIdx (via renumber
// and a redo_lists rebuild); the other is appended to the block vector. Link
// order — whether the appended block is chained after self (taking self's
// Next) or before it (taking self's Prev) — is decided by which sub-block's
// links touch self's former Prev and Next; when neither sub-block touches
// either, the appended block goes after self. Returns the appended block's
// index.
func (p *Partition) Split(selfIdx int) (int, error) {
	self := p.Blocks[selfIdx]
	if self.Size() == 1 {
		p.log("split: block has only one node, can't split", "block", selfIdx)
		return -1, nil
	}

	currNode := -1
	for e := self.Boundary.Front(); e != nil && currNode == -1; e = e.Next() {
		n := e.Value.(NodeRecord).NodeNum
		for _, link := range p.Adj.Neighbors(n) {
			if p.Owner[link] == self.BlockNum {
				currNode = n
				break
			}
		}
	}
	if currNode == -1 {
		return -1, blockerr.New("split", blockerr.CodeSplitNoStartNode,
			"unable to find a starting node in block %d", selfIdx)
	}

	deepLoc, err := self.FindFurthest(p, currNode)
	if err != nil {
		return -1, err
	}
	if deepLoc[0] == deepLoc[1] {
		return -1, blockerr.New("split", blockerr.CodeSplitEndpointsEqual,
			"deepest points coincide in block %d", selfIdx)
	}

	self.ModifiedTimes++

	nb0 := newBlock(len(p.Blocks)+1, self.MaxSize)
	nb1 := newBlock(len(p.Blocks)+0, self.MaxSize)
	nb0.ModifiedTimes = self.ModifiedTimes
	nb1.ModifiedTimes = self.ModifiedTimes
	nbs := [2]*Block{nb0, nb1}

	for i, seed := range deepLoc {
		nbs[i].Boundary.PushBack(NodeRecord{NodeNum: seed})
		p.Owner[seed] = nbs[i].BlockNum
		p.Flags[seed] = FlagBoundary
	}

	nItsMax := self.Size()
	tryOther := false
	for cnt := 0; cnt < nItsMax; cnt++ {
		sCnt := 0
		smaller := nb0.Size() > nb1.Size()
		if smaller != tryOther {
			sCnt = 1
		}

		nAdded := 0
		nBound := nbs[sCnt].Boundary.Len()
		e := nbs[sCnt].Boundary.Front()
		for i := 0; i < nBound && e != nil; i++ {
			n := e.Value.(NodeRecord).NodeNum
			for _, link := range p.Adj.Neighbors(n) {
				if p.Owner[link] == self.BlockNum {
					nbs[sCnt].Boundary.PushBack(NodeRecord{NodeNum: link})
					p.Owner[link] = nbs[sCnt].BlockNum
					p.Flags[link] = FlagBoundary
					nAdded++
				}
			}
			e = e.Next()
		}

		if nAdded == 0 {
			if tryOther {
				break
			}
			tryOther = true
		}
	}

	_ = nb0.TidyBoundaries(p)
	_ = nb1.TidyBoundaries(p)

	beforeAfter := [2]int{}
	for i, nb := range nbs {
		for _, link := range nb.GetLinks(p) {
			if link == self.Prev {
				beforeAfter[i] |= 1
			}
			if link == self.Next {
				beforeAfter[i] |= 2
			}
		}
	}

	ord := 1
	switch {
	case beforeAfter[0] == 0 && beforeAfter[1] == 0:
		p.log("split: can't determine adjacency to neighbors", "block", selfIdx)
	case beforeAfter[0] == 2:
		ord = 2
	case beforeAfter[1] == 1 && beforeAfter[0] != 1:
		ord = 2
	}

	nb0.Renumber(p, selfIdx)
	if err := self.RedoLists(p); err != nil {
		return -1, err
	}

	bothPrev := self.Prev
	bothNext := self.Next
	if ord == 1 {
		self.Next = nb1.BlockNum
		nb1.Prev = selfIdx
		nb1.Next = bothNext
		if bothNext >= 0 {
			p.Blocks[bothNext].Prev = nb1.BlockNum
		}
	} else {
		self.Prev = nb1.BlockNum
		nb1.Next = selfIdx
		nb1.Prev = bothPrev
		if bothPrev >= 0 {
			p.Blocks[bothPrev].Next = nb1.BlockNum
		}
	}

	nb1.Parent = selfIdx
	self.Child = nb1.BlockNum

	p.Blocks = append(p.Blocks, nb1)
	p.log("split", "block", selfIdx, "new_block", nb1.BlockNum,
		"self_size", self.Size(), "new_size", nb1.Size())
	return nb1.BlockNum, nil
}

// SplitInLayer is Split's variant used during a fill pass: rather than
// searching for a pseudo-diameter, it seeds the two sub-blocks directly from
// self's linked neighbors' boundary nodes (self.Prev feeding nb[0], self.Next
// feeding nb[1]), falling back to plain Split when self has no links at all.
// If a seed ends up empty, FindFurthest's underlying depth-in-block search is
// used to plant one node from the deepest point relative to the other
// sub-block. When limitSize is set, a block already more than twice max_size
// is rejected outright, and growth stops adding to a sub-block once it
// reaches max_size.
func (p *Partition) SplitInLayer(selfIdx int, limitSize bool) (int, error) {
	self := p.Blocks[selfIdx]
	if limitSize && self.Size() > 2*self.MaxSize {
		p.log("split_in_layer: block too large to split", "block", selfIdx, "size", self.Size())
		return -1, blockerr.ErrOversizeSplit
	}
	if self.Prev == -1 && self.Next == -1 {
		return p.Split(selfIdx)
	}

	self.ModifiedTimes++

	nb0 := newBlock(len(p.Blocks)+1, self.MaxSize)
	nb1 := newBlock(len(p.Blocks)+0, self.MaxSize)
	nb0.ModifiedTimes = self.ModifiedTimes
	nb1.ModifiedTimes = self.ModifiedTimes
	nbs := [2]*Block{nb0, nb1}
	boundBlocks := [2]int{self.Prev, self.Next}

	for i, bb := range boundBlocks {
		if bb == -1 {
			continue
		}
		for e := p.Blocks[bb].Boundary.Front(); e != nil; e = e.Next() {
			n := e.Value.(NodeRecord).NodeNum
			for _, link := range p.Adj.Neighbors(n) {
				if p.Owner[link] == selfIdx {
					nbs[i].Boundary.PushBack(NodeRecord{NodeNum: link})
					p.Owner[link] = nbs[i].BlockNum
					p.Flags[link] = FlagBoundary
				}
			}
		}
	}

	if nb0.Size() == 0 && nb1.Size() == 0 {
		return -1, blockerr.New("split_in_layer", blockerr.CodeSplitLayerBothEmpty,
			"both sub-blocks seeded with zero size in block %d", selfIdx)
	}

	for i := range nbs {
		if nbs[i].Size() != 0 {
			continue
		}
		other := nbs[(i+1)%2]
		depths := p.Scratch
		for j := range depths {
			depths[j] = 0
		}
		for e := other.Boundary.Front(); e != nil; e = e.Next() {
			depths[e.Value.(NodeRecord).NodeNum] = 1
		}
		_, maxLoc := self.DepthInBlock(p, depths)
		if maxLoc == -1 {
			return -1, blockerr.New("split_in_layer", blockerr.CodeSplitLayerNoMaxDepth,
				"no maximum depth found in block %d", selfIdx)
		}
		nbs[i].Boundary.PushBack(NodeRecord{NodeNum: maxLoc})
		p.Owner[maxLoc] = nbs[i].BlockNum
		p.Flags[maxLoc] = FlagBoundary
	}

	if nb0.Size() == 0 || nb1.Size() == 0 {
		return -1, blockerr.New("split_in_layer", blockerr.CodeSplitLayerOneEmpty,
			"one sub-block still empty after depth seeding in block %d", selfIdx)
	}

	nItsMax := self.Size()
	tryOther := false
	for cnt := 0; cnt < nItsMax; cnt++ {
		sCnt := 0
		smaller := nb0.Size() > nb1.Size()
		if smaller != tryOther {
			sCnt = 1
		}
		if limitSize && nbs[sCnt].Size() >= nbs[sCnt].MaxSize {
			continue
		}

		nAdded := 0
		nBound := nbs[sCnt].Boundary.Len()
		e := nbs[sCnt].Boundary.Front()
		for i := 0; i < nBound && e != nil; i++ {
			n := e.Value.(NodeRecord).NodeNum
			for _, link := range p.Adj.Neighbors(n) {
				if p.Owner[link] == selfIdx {
					nbs[sCnt].Boundary.PushBack(NodeRecord{NodeNum: link})
					p.Owner[link] = nbs[sCnt].BlockNum
					p.Flags[link] = FlagBoundary
					nAdded++
				}
			}
			e = e.Next()
		}

		if nAdded == 0 {
			if tryOther {
				break
			}
			tryOther = true
		}
	}

	_ = nb0.TidyBoundaries(p)
	_ = nb1.TidyBoundaries(p)

	nb0.Renumber(p, selfIdx)
	if err := self.RedoLists(p); err != nil {
		return -1, err
	}

	bothPrev := self.Prev
	bothNext := self.Next
	self.Next = nb1.BlockNum
	nb1.Prev = selfIdx
	nb1.Next = bothNext
	if bothNext >= 0 {
		p.Blocks[bothNext].Prev = nb1.BlockNum
	}
	if bothPrev >= 0 {
		p.Blocks[bothPrev].Next = selfIdx
	}

	nb1.Parent = selfIdx
	self.Child = nb1.BlockNum

	p.Blocks = append(p.Blocks, nb1)
	p.log("split_in_layer", "block", selfIdx, "new_block", nb1.BlockNum,
		"self_size", self.Size(), "new_size", nb1.Size())
	return nb1.BlockNum, nil
}

// SeparateUnjoined finds every node still owned by self that a BFS from its
// first boundary node cannot reach, and peels each disconnected component
// into its own new block, splicing self's outer links onto whichever new
// component actually touches them. It is a defensive pass for blocks whose
// interior connectivity has been broken by upstream operations (e.g. a Join
// that merged two blocks touching only at a single node).
func (p *Partition) SeparateUnjoined(selfIdx int) error {
	self := p.Blocks[selfIdx]
	if self.Boundary.Len() == 0 {
		return nil
	}

	depths := p.Scratch
	for i := range depths {
		depths[i] = 0
	}
	seedNode := self.Boundary.Front().Value.(NodeRecord).NodeNum
	depths[seedNode] = 1
	_, _ = self.DepthInBlock(p, depths)

	var toProcess []int
	for e := self.Boundary.Front(); e != nil; e = e.Next() {
		toProcess = append(toProcess, e.Value.(NodeRecord).NodeNum)
	}

	changed := false
	for _, seed := range toProcess {
		if depths[seed] != 0 {
			continue
		}
		changed = true

		newB := newBlock(len(p.Blocks), self.MaxSize)
		newB.Boundary.PushBack(NodeRecord{NodeNum: seed})
		p.Owner[seed] = newB.BlockNum
		p.Flags[seed] = FlagBoundary
		depths[seed] = 1

		for {
			nAdded := 0
			nBound := newB.Boundary.Len()
			e := newB.Boundary.Front()
			for i := 0; i < nBound && e != nil; i++ {
				n := e.Value.(NodeRecord).NodeNum
				for _, link := range p.Adj.Neighbors(n) {
					if p.Owner[link] == selfIdx {
						newB.Boundary.PushBack(NodeRecord{NodeNum: link})
						p.Owner[link] = newB.BlockNum
						p.Flags[link] = FlagBoundary
						depths[link] = 1
						nAdded++
					}
				}
				e = e.Next()
			}
			if nAdded == 0 {
				break
			}
		}

		_ = newB.TidyBoundaries(p)

		for _, link := range newB.GetLinks(p) {
			if link == self.Prev {
				newB.Prev = self.Prev
				p.Blocks[self.Prev].Next = newB.BlockNum
				self.Prev = -1
			}
			if link == self.Next {
				newB.Next = self.Next
				p.Blocks[self.Next].Prev = newB.BlockNum
				self.Next = -1
			}
		}

		p.log("separate_unjoined: split off disconnected component",
			"original", selfIdx, "new_block", newB.BlockNum, "size", newB.Size())
		p.Blocks = append(p.Blocks, newB)
		self = p.Blocks[selfIdx]
	}

	if changed {
		return self.RedoLists(p)
	}
	return nil
}
