package gpulayout

import (
	"fmt"

	"github.com/notargets/gocca"
)

// NewDevice opens an OCCA device, trying parallel backends before falling
// back to Serial, adapted from the original DGKernel test-device selection
// helper for use by the CLI driver rather than only by tests.
func NewDevice() (*gocca.OCCADevice, error) {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	var lastErr error
	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			return device, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("gpulayout: failed to open any OCCA device: %w", lastErr)
}
