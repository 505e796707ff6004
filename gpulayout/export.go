// Package gpulayout exports a finished block chain to a GPU device buffer,
// following the allocate-then-copy pattern used throughout
// DGKernel/runner/memory_operations.go and DGKernel/utils.CreateTestDevice:
// concatenate host data into one contiguous slice, then Malloc it onto the
// device in a single call. This package performs no partitioning decisions
// of its own; it only linearizes an already-stable chain.
package gpulayout

import (
	"fmt"
	"unsafe"

	"github.com/notargets/gocca"
	"github.com/pogo-fea/blocker/block"
)

// ErrChainNotClosed is returned when the block chain is not a single simple
// path — i.e. there is no block with Prev == -1, or the walk from it does
// not visit every active block exactly once. This signals a violation of the
// core's I5/I6 linkage invariants upstream of export.
var ErrChainNotClosed = fmt.Errorf("gpulayout: block prev/next chain is not a single simple path")

// Layout records where each block's node tile begins inside the exported
// device buffer, mirroring the Offsets field convention of
// DGKernel/partitions.PartitionedArray.
type Layout struct {
	// BlockOffsets[i] is the index into the exported node-id buffer where
	// block chain-order i's tile begins; BlockOffsets[len(chain)] is the
	// total node count.
	BlockOffsets []int64
	// ChainOrder lists the block indices in chain (Prev==-1 to Next==-1)
	// order, matching BlockOffsets.
	ChainOrder []int
	// Memory is the device allocation holding the concatenated node ids, one
	// int32 per node, interior-then-boundary within each block's tile.
	Memory *gocca.OCCAMemory
}

// Export walks the prev/next chain of blocks starting from the block whose
// Prev is -1, concatenates each visited block's interior-then-boundary node
// ids into one host buffer, and copies it onto device in a single
// allocation.
func Export(device *gocca.OCCADevice, blocks []*block.Block) (*Layout, error) {
	active := make([]*block.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.IsActive {
			active = append(active, b)
		}
	}
	if len(active) == 0 {
		return &Layout{BlockOffsets: []int64{0}}, nil
	}

	start := -1
	for i, b := range active {
		if b.Prev == -1 {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, ErrChainNotClosed
	}

	byNum := make(map[int]*block.Block, len(active))
	for _, b := range active {
		byNum[b.BlockNum] = b
	}

	visited := make(map[int]bool, len(active))
	var chain []int
	var hostIDs []int32
	offsets := []int64{0}

	cur := active[start]
	for {
		if visited[cur.BlockNum] {
			return nil, ErrChainNotClosed
		}
		visited[cur.BlockNum] = true
		chain = append(chain, cur.BlockNum)

		for e := cur.Interior.Front(); e != nil; e = e.Next() {
			hostIDs = append(hostIDs, int32(e.Value.(block.NodeRecord).NodeNum))
		}
		for e := cur.Boundary.Front(); e != nil; e = e.Next() {
			hostIDs = append(hostIDs, int32(e.Value.(block.NodeRecord).NodeNum))
		}
		offsets = append(offsets, int64(len(hostIDs)))

		if cur.Next == -1 {
			break
		}
		next, ok := byNum[cur.Next]
		if !ok {
			return nil, ErrChainNotClosed
		}
		cur = next
	}

	if len(chain) != len(active) {
		return nil, ErrChainNotClosed
	}

	var hostPtr unsafe.Pointer
	if len(hostIDs) > 0 {
		hostPtr = unsafe.Pointer(&hostIDs[0])
	}
	mem := device.Malloc(int64(len(hostIDs))*4, hostPtr, nil)

	return &Layout{
		BlockOffsets: offsets,
		ChainOrder:   chain,
		Memory:       mem,
	}, nil
}
