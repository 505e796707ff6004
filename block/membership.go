package block

import "github.com/pogo-fea/blocker/blockerr"

// TidyBoundaries reclassifies every current boundary node: a boundary node
// all of whose neighbors are co-owned is moved into Interior. Order of the
// resulting Interior list is unspecified.
func (b *Block) TidyBoundaries(p *Partition) error {
	e := b.Boundary.Front()
	for e != nil {
		next := e.Next()
		rec := e.Value.(NodeRecord)
		n := rec.NodeNum

		isBoundary := false
		for _, link := range p.Adj.Neighbors(n) {
			if link < 0 {
				return blockerr.New("tidy_boundaries", blockerr.CodeTidyUndefinedNeighbor,
					"adj has an undefined neighbor for node %d", n)
			}
			if p.Owner[link] != b.BlockNum {
				isBoundary = true
				break
			}
		}
		if !isBoundary {
			p.Flags[n] = FlagInterior
			b.Boundary.Remove(e)
			b.Interior.PushBack(rec)
		}
		e = next
	}
	return nil
}

// RedoLists rebuilds both Interior and Boundary from Owner[], then tidies.
func (b *Block) RedoLists(p *Partition) error {
	b.Boundary.Init()
	b.Interior.Init()
	for n := 0; n < p.Adj.N; n++ {
		if p.Owner[n] == b.BlockNum {
			b.Boundary.PushBack(NodeRecord{NodeNum: n})
			p.Flags[n] = FlagBoundary
		}
	}
	return b.TidyBoundaries(p)
}

// ActiveNodes returns the subset of Boundary whose nodes have at least one
// free neighbor.
func (b *Block) ActiveNodes(p *Partition) []NodeRecord {
	var out []NodeRecord
	for e := b.Boundary.Front(); e != nil; e = e.Next() {
		rec := e.Value.(NodeRecord)
		for _, link := range p.Adj.Neighbors(rec.NodeNum) {
			if p.Flags[link] == FlagFree {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// GetLinks returns the deduplicated, insertion-ordered set of distinct
// foreign block indices reachable by a single edge from any boundary node.
func (b *Block) GetLinks(p *Partition) []int {
	var links []int
	seen := make(map[int]bool)
	for e := b.Boundary.Front(); e != nil; e = e.Next() {
		rec := e.Value.(NodeRecord)
		for _, link := range p.Adj.Neighbors(rec.NodeNum) {
			blockLink := p.Owner[link]
			if blockLink >= 0 && blockLink != b.BlockNum && !seen[blockLink] {
				seen[blockLink] = true
				links = append(links, blockLink)
			}
		}
	}
	return links
}

// GetStatus classifies the block for the driver's benefit: 0 if active,
// 2 if inactive with no active linked block, 1 if inactive but linked to
// an active block. The result is also stored in BlockFlag.
func (b *Block) GetStatus(p *Partition) int {
	if b.IsActive {
		b.BlockFlag = 0
		return b.BlockFlag
	}
	b.BlockFlag = 2
	for _, link := range b.GetLinks(p) {
		if p.Blocks[link].IsActive {
			b.BlockFlag = 1
			break
		}
	}
	return b.BlockFlag
}
