// Command blockpart drives the block partitioning engine end to end: load or
// synthesize a mesh adjacency, seed an initial ownership assignment, then
// iteratively split oversize blocks and join undersize ones until the target
// block count is reached or the pass goes quiescent. Flag surface mirrors
// gocfd's own partitioning CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pogo-fea/blocker/block"
	"github.com/pogo-fea/blocker/blockcfg"
	"github.com/pogo-fea/blocker/gpulayout"
	"github.com/pogo-fea/blocker/mesh"
	"github.com/pogo-fea/blocker/metisseed"
)

func main() {
	var (
		meshFile     = flag.String("mesh", "", "Input mesh file (.neu, .msh, or .su2)")
		synthetic    = flag.String("synthetic", "", "Synthetic grid adjacency, e.g. 8x8, used when -mesh is unset")
		xBlockSize   = flag.Int("x-block-size", blockcfg.Default().XBlockSize, "Block width used to derive max block size")
		yBlockSize   = flag.Int("y-block-size", blockcfg.Default().YBlockSize, "Block height used to derive max block size")
		targetBlocks = flag.Int("target-blocks", 4, "Number of blocks the split/join pass aims for")
		seedMode     = flag.String("seed", "metis", "Initial ownership source: metis|file")
		ownerFile    = flag.String("owner-file", "", "Per-node owner assignment, one integer per line, when -seed=file")
		gpuExport    = flag.Bool("gpu-export", false, "Export the finished block chain to a GPU device buffer")
		verbose      = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := blockcfg.Config{
		XBlockSize:                *xBlockSize,
		YBlockSize:                *yBlockSize,
		DMax:                      4,
		FindFurthestMaxIterations: 11,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	adj, err := loadAdjacency(*meshFile, *synthetic, cfg.DMax)
	if err != nil {
		log.Fatalf("loading mesh: %v", err)
	}
	logger.Info("loaded adjacency", "nodes", adj.N, "d_max", adj.DMax)

	owner, err := seedOwnership(adj, *seedMode, *ownerFile, *targetBlocks)
	if err != nil {
		log.Fatalf("seeding ownership: %v", err)
	}

	p, err := block.Separate(adj, owner, cfg)
	if err != nil {
		log.Fatalf("separate: %v", err)
	}
	p.WithLogger(logger)

	if !p.VerifyAll() {
		logger.Warn("initial partition failed verification")
	}

	runPasses(p, *targetBlocks)

	fmt.Printf("final block count: %d\n", len(p.Blocks))
	for _, b := range p.Blocks {
		fmt.Printf("  block %d: size=%d prev=%d next=%d active=%v\n",
			b.BlockNum, b.Size(), b.Prev, b.Next, b.IsActive)
	}
	if !p.VerifyAll() {
		os.Exit(1)
	}

	if *gpuExport {
		if err := exportToGPU(p); err != nil {
			log.Fatalf("gpu export: %v", err)
		}
	}
}

func exportToGPU(p *block.Partition) error {
	device, err := gpulayout.NewDevice()
	if err != nil {
		return err
	}
	defer device.Free()

	layout, err := gpulayout.Export(device, p.Blocks)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d blocks, %d total nodes to device %s\n",
		len(layout.ChainOrder), layout.BlockOffsets[len(layout.BlockOffsets)-1], device.Mode())
	return nil
}

func loadAdjacency(meshFile, synthetic string, dMax int) (*mesh.Adjacency, error) {
	if meshFile != "" {
		return mesh.LoadFromGocfd(meshFile, dMax)
	}
	if synthetic == "" {
		synthetic = "8x8"
	}
	rows, cols, err := parseDims(synthetic)
	if err != nil {
		return nil, err
	}
	return mesh.NewGridAdjacency(rows, cols), nil
}

func parseDims(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("blockpart: -synthetic must look like RxC, got %q", s)
	}
	rows, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("blockpart: bad row count in %q: %w", s, err)
	}
	cols, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("blockpart: bad column count in %q: %w", s, err)
	}
	return rows, cols, nil
}

func seedOwnership(adj *mesh.Adjacency, seedMode, ownerFile string, targetBlocks int) ([]int, error) {
	switch seedMode {
	case "metis":
		owner32, err := metisseed.Seed(adj, targetBlocks)
		if err != nil {
			return nil, err
		}
		owner := make([]int, len(owner32))
		for i, o := range owner32 {
			owner[i] = int(o)
		}
		return owner, nil
	case "file":
		if ownerFile == "" {
			return nil, fmt.Errorf("blockpart: -seed=file requires -owner-file")
		}
		return readOwnerFile(ownerFile, adj.N)
	default:
		return nil, fmt.Errorf("blockpart: unknown -seed value %q", seedMode)
	}
}

func readOwnerFile(path string, n int) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blockpart: reading owner file: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) != n {
		return nil, fmt.Errorf("blockpart: owner file has %d entries, want %d", len(fields), n)
	}
	owner := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("blockpart: owner file entry %d: %w", i, err)
		}
		owner[i] = v
	}
	return owner, nil
}

// runPasses applies a simple, deliberately unambitious policy. Each pass
// takes the current average block size (node count over current block
// count), splits every active block larger than twice that average
// (SplitInLayer when it is linked on both sides, Split otherwise) while the
// block count stays below twice targetBlocks, and then, if there are more
// blocks than targetBlocks, calls Join on the first active block smaller
// than half that average. Passes repeat until one makes no change, for at
// most 64 passes; a pass that calls Join counts as a change.
// Primitive-selection policy is explicitly out of the core's scope; this is
// just one reasonable driver built on top of it.
func runPasses(p *block.Partition, targetBlocks int) {
	for pass := 0; pass < 64; pass++ {
		if len(p.Blocks) == 0 {
			return
		}
		avg := p.Adj.N / max(len(p.Blocks), 1)
		changed := false

		for i := 0; i < len(p.Blocks) && len(p.Blocks) < targetBlocks*2; i++ {
			b := p.Blocks[i]
			if !b.IsActive || b.Size() <= 2*avg {
				continue
			}
			var err error
			if b.Prev != -1 && b.Next != -1 {
				_, err = p.SplitInLayer(i, true)
			} else {
				_, err = p.Split(i)
			}
			if err == nil {
				changed = true
			}
		}

		if len(p.Blocks) > targetBlocks {
			for i := 0; i < len(p.Blocks); i++ {
				b := p.Blocks[i]
				if !b.IsActive || b.Size() >= avg/2 {
					continue
				}
				p.Join(i)
				changed = true
				break
			}
		}

		if !changed {
			return
		}
	}
}
