package block

// CheckLinks re-establishes I5/I6 by scanning GetLinks: if Prev or Next is
// not in the physically-adjacent set, the corresponding back-pointer is
// severed and the field cleared. Returns false if either link was severed.
func (b *Block) CheckLinks(p *Partition) bool {
	linkSet := make(map[int]bool)
	for _, l := range b.GetLinks(p) {
		linkSet[l] = true
	}

	ok := true
	if b.Prev != -1 && !linkSet[b.Prev] {
		p.Blocks[b.Prev].Next = -1
		b.Prev = -1
		ok = false
	}
	if b.Next != -1 && !linkSet[b.Next] {
		p.Blocks[b.Next].Prev = -1
		b.Next = -1
		ok = false
	}
	return ok
}

// RemoveFalseLinks is CheckLinks phrased for external callers.
func (b *Block) RemoveFalseLinks(p *Partition) bool {
	return b.CheckLinks(p)
}

// DeactivateRelink deactivates the block and, if its prev and next are
// mutually adjacent, splices them together directly, skipping the block.
// Otherwise it severs both back-pointers. Reports whether direct relinking
// succeeded.
func (b *Block) DeactivateRelink(p *Partition) bool {
	b.IsActive = false

	if b.Next < 0 {
		if b.Prev >= 0 {
			p.Blocks[b.Prev].Next = -1
		}
		b.Prev = -1
		return false
	}

	linked := false
	for _, l := range p.Blocks[b.Next].GetLinks(p) {
		if l == b.Prev {
			linked = true
			break
		}
	}

	if linked {
		p.log("deactivate_relink: splicing around removed block",
			"removed", b.BlockNum, "prev", b.Prev, "next", b.Next)
		p.Blocks[b.Next].Prev = b.Prev
		p.Blocks[b.Prev].Next = b.Next
		b.Next = -1
		b.Prev = -1
		return true
	}

	p.log("deactivate_relink: prev and next not adjacent, can't relink", "block", b.BlockNum)
	if b.Next >= 0 {
		p.Blocks[b.Next].Prev = -1
	}
	if b.Prev >= 0 {
		p.Blocks[b.Prev].Next = -1
	}
	b.Next = -1
	b.Prev = -1
	return false
}
