package block

import (
	"github.com/pogo-fea/blocker/blockcfg"
	"github.com/pogo-fea/blocker/blockerr"
	"github.com/pogo-fea/blocker/mesh"
)

// Separate builds a fresh Partition and block vector directly from an
// external per-node ownership assignment (typically produced by metisseed's
// initial cut, or read back from a checkpoint). Nodes with a negative owner
// are left free. The block count is derived as max(owner)+1; an owner value
// exceeding that derived count is a structural inconsistency and raised as a
// CodeSeparateOwnerOOR error rather than silently truncated.
func Separate(adj *mesh.Adjacency, owner []int, cfg blockcfg.Config) (*Partition, error) {
	p := New(adj, cfg)
	if len(owner) != adj.N {
		return nil, blockerr.New("separate", blockerr.CodeSeparateOwnerOOR,
			"owner array length %d does not match adjacency size %d", len(owner), adj.N)
	}

	maxBlock := -1
	for _, o := range owner {
		if o > maxBlock {
			maxBlock = o
		}
	}
	if maxBlock < 0 {
		return p, nil
	}

	p.Blocks = make([]*Block, maxBlock+1)
	for i := range p.Blocks {
		p.Blocks[i] = newBlock(i, cfg.MaxSize())
	}

	for n, o := range owner {
		if o < 0 {
			continue
		}
		if o > maxBlock {
			return nil, blockerr.New("separate", blockerr.CodeSeparateOwnerOOR,
				"owner %d for node %d exceeds derived block count %d", o, n, maxBlock+1)
		}
		p.Owner[n] = o
		p.Flags[n] = FlagBoundary
		p.Blocks[o].Boundary.PushBack(NodeRecord{NodeNum: n})
	}

	for _, b := range p.Blocks {
		if err := b.TidyBoundaries(p); err != nil {
			return nil, err
		}
	}

	p.log("separate", "num_blocks", len(p.Blocks))
	return p, nil
}

// VerifyAll runs Verify against every block in the partition, logging each
// failure and returning true only if all of them pass.
func (p *Partition) VerifyAll() bool {
	ok := true
	for _, b := range p.Blocks {
		if !b.Verify(p) {
			ok = false
		}
	}
	return ok
}
