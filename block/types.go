// Package block implements the mutable graph-partition engine: growth,
// splitting, merging, and topological linkage of contiguous node blocks
// over a read-only mesh adjacency. See SPEC_FULL.md for the full contract;
// this file holds the shared types every other file in the package builds
// on.
package block

import (
	"container/list"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pogo-fea/blocker/blockcfg"
	"github.com/pogo-fea/blocker/mesh"
)

// Flag classifies a node's ownership state.
type Flag uint8

const (
	// FlagFree marks a node not owned by any block.
	FlagFree Flag = iota
	// FlagInterior marks an owned node all of whose neighbors are co-owned.
	FlagInterior
	// FlagBoundary marks an owned node with at least one free or foreign
	// neighbor.
	FlagBoundary
	// FlagDeferred is reserved for depth-limited fill; unused by this
	// engine, retained for value compatibility with the original.
	FlagDeferred
	// FlagAmbiguous marks a node claimable by multiple active blocks,
	// produced only by the non-greedy Advance path.
	FlagAmbiguous
	// FlagExhaustedBoundary marks a boundary node AdvanceGreedy has already
	// exhausted (none of its neighbors were free on its last visit).
	FlagExhaustedBoundary
)

// NodeRecord is a single node's membership record inside a block's interior
// or boundary list. Score is preserved for compatibility with the original
// (which used it for a depth-limited fill primitive not carried into this
// engine) and has no behavioral role.
type NodeRecord struct {
	NodeNum int
	Score   float64
}

// Block is a contiguous group of node identifiers, identified by its index
// (BlockNum) in the owning Partition's Blocks slice. Identities are
// unstable across Join and Split — callers must not cache a *Block or its
// BlockNum across a mutating call; re-fetch Partition.Blocks[i] instead.
type Block struct {
	BlockNum int

	// Interior and Boundary hold NodeRecord values. container/list gives
	// O(1) removal of an arbitrary element while iterating, matching the
	// original's use of std::list for exactly that reason (see
	// SPEC_FULL.md's design notes on node-list membership).
	Interior *list.List
	Boundary *list.List

	Prev, Next     int
	Parent, Child  int
	MaxSize        int
	IsActive       bool
	BlockFlag      int
	ModifiedTimes  int
	LastAdvance    int
}

// newBlock returns an empty, active block ready to be seeded.
func newBlock(blockNum, maxSize int) *Block {
	return &Block{
		BlockNum: blockNum,
		Interior: list.New(),
		Boundary: list.New(),
		Prev:     -1,
		Next:     -1,
		Parent:   -1,
		Child:    -1,
		MaxSize:  maxSize,
		IsActive: true,
	}
}

// Size returns |interior| + |boundary|.
func (b *Block) Size() int {
	return b.Interior.Len() + b.Boundary.Len()
}

// Partition is the shared, mutable state of the engine: per-node owner and
// classification arrays plus the growable block arena. All primitive
// methods on Block take a *Partition (or are methods of Partition) because
// they must read the adjacency and mutate this shared state.
type Partition struct {
	Adj *mesh.Adjacency
	Cfg blockcfg.Config

	// Owner[n] is the block index owning node n, or -1.
	Owner []int
	// Flags[n] is the classification of node n.
	Flags []Flag

	// Blocks is the arena; Blocks[i].BlockNum must equal i (invariant I7).
	Blocks []*Block

	// Scratch is the N-length BFS depth buffer reused by DepthInBlock,
	// FindFurthest, and SeparateUnjoined, allocated once per Partition to
	// avoid per-call heap churn on large meshes.
	Scratch []int

	Logger    *slog.Logger
	SessionID uuid.UUID
}

// New creates an empty partition over the given adjacency. No blocks exist
// yet; callers seed one with Separate or by appending blocks directly.
func New(adj *mesh.Adjacency, cfg blockcfg.Config) *Partition {
	owner := make([]int, adj.N)
	for i := range owner {
		owner[i] = -1
	}
	return &Partition{
		Adj:       adj,
		Cfg:       cfg,
		Owner:     owner,
		Flags:     make([]Flag, adj.N),
		Blocks:    nil,
		Scratch:   make([]int, adj.N),
		Logger:    slog.New(slog.DiscardHandler),
		SessionID: uuid.New(),
	}
}

// WithLogger attaches a diagnostic logger, returning the partition for
// chaining. A nil logger is replaced by a discarding logger so callers
// never need a nil check.
func (p *Partition) WithLogger(logger *slog.Logger) *Partition {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p.Logger = logger
	return p
}

func (p *Partition) log(msg string, args ...any) {
	args = append([]any{slog.String("session", p.SessionID.String())}, args...)
	p.Logger.Info(msg, args...)
}
