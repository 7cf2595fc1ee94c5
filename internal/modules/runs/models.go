// Package runs keeps the experiment audit trail: every encode and recovery
// operation against the holographic network is recorded for later inspection.
package runs

import "time"

// Run kinds.
const (
	KindEncode   = "encode"
	KindRecovery = "recovery"
)

// Run is one recorded experiment operation. Bit and entropy are set for
// encode runs; erased indices and the verdict for recovery runs.
type Run struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Layers        int       `json:"layers"`
	Bit           *int      `json:"bit,omitempty"`
	Entropy       *float64  `json:"entropy,omitempty"`
	ErasedIndices []int     `json:"erased_indices,omitempty"`
	Recoverable   *bool     `json:"recoverable,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
