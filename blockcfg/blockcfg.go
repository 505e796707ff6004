// Package blockcfg holds the sizing and iteration-bound configuration for
// the block engine, following the teacher's plain-struct-plus-validation
// convention (see DGKernel/runner/builder.Config) rather than externalized
// env/YAML configuration — this is a library, not a service.
package blockcfg

import "fmt"

// Config bounds the shapes the block engine will grow and the safety caps on
// its bounded traversals.
type Config struct {
	// XBlockSize and YBlockSize derive MaxSize = XBlockSize * YBlockSize,
	// the per-block node cap referenced throughout spec.md.
	XBlockSize int
	YBlockSize int

	// DMax is the maximum node degree the adjacency may present.
	DMax int

	// FindFurthestMaxIterations bounds the double-sweep pseudo-peripheral
	// search in Split. The original hard-codes 11; kept configurable per
	// the design note that the cap is a safety bound, not a correctness
	// parameter.
	FindFurthestMaxIterations int
}

// Default returns the configuration used throughout the property tests: an
// 8-node max block size (X=4, Y=2) and the original's 11-iteration cap.
func Default() Config {
	return Config{
		XBlockSize:                4,
		YBlockSize:                2,
		DMax:                      4,
		FindFurthestMaxIterations: 11,
	}
}

// MaxSize returns XBlockSize * YBlockSize.
func (c Config) MaxSize() int {
	return c.XBlockSize * c.YBlockSize
}

// Validate reports the first configuration error found, if any.
func (c Config) Validate() error {
	if c.XBlockSize <= 0 || c.YBlockSize <= 0 {
		return fmt.Errorf("blockcfg: XBlockSize and YBlockSize must be positive, got %d, %d",
			c.XBlockSize, c.YBlockSize)
	}
	if c.DMax <= 0 {
		return fmt.Errorf("blockcfg: DMax must be positive, got %d", c.DMax)
	}
	if c.FindFurthestMaxIterations <= 0 {
		return fmt.Errorf("blockcfg: FindFurthestMaxIterations must be positive, got %d",
			c.FindFurthestMaxIterations)
	}
	return nil
}
