// Package holography implements a toy holographic quantum error-correcting
// code: a tree-shaped tensor network modeling the bulk-boundary (AdS/CFT)
// correspondence in the style of the HaPPY pentagon code. One logical bit is
// encoded into a boundary state, and erasure patterns are tested against the
// causal-wedge reconstruction threshold.
//
// The model is deliberately simplified: each node carries one randomly
// sampled unitary standing in for a perfect tensor, encoding broadcasts the
// logical bit across the boundary instead of performing a full contraction,
// and recoverability is a fixed threshold rule rather than a contraction of
// the remaining boundary support.
package holography

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// TensorNode is a single tensor in the network. The unitary data matrix is
// generated once at construction and never mutated afterwards, so completed
// networks are safe for concurrent read access.
type TensorNode struct {
	Name string
	Dims []int
	Data *mat.CDense
}

// LegCount returns the number of tensor legs.
func (n *TensorNode) LegCount() int {
	return len(n.Dims)
}

// UnitarySource produces the random unitaries used as perfect-tensor stand-ins.
// It abstracts the random stream so tests can seed it and assert bit-identical
// topologies across runs.
type UnitarySource interface {
	// NextUnitary returns an orthonormal matrix of size floor(sqrt(prod(dims))).
	// Leg profiles whose product is below 1 fail with ErrShape.
	NextUnitary(dims []int) (*mat.CDense, error)
}

// GaussianSource samples unitaries by QR-style orthogonalization of a matrix
// with independent Gaussian real and imaginary parts. A single seeded stream
// feeds all draws, so construction order determines the result.
type GaussianSource struct {
	rng *rand.Rand
}

// NewGaussianSource creates a seeded unitary source.
func NewGaussianSource(seed int64) *GaussianSource {
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}
}

// NextUnitary implements UnitarySource.
func (s *GaussianSource) NextUnitary(dims []int) (*mat.CDense, error) {
	size := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("leg dimension %d is not positive: %w", d, ErrShape)
		}
		size *= d
	}

	// Matrix dimension is the floored square root of the leg product. Odd
	// qubit leg counts (the 5-leg root, 3-leg expansion nodes) have no exact
	// square root, so the model truncates rather than rejecting them.
	n := int(math.Sqrt(float64(size)))
	if n < 1 {
		return nil, fmt.Errorf("leg-dimension product %d leaves no matrix dimension: %w", size, ErrShape)
	}

	// Random complex matrix with independent Gaussian real/imaginary parts.
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, complex(s.rng.NormFloat64(), s.rng.NormFloat64()))
		}
	}

	return orthonormalize(m), nil
}

// orthonormalize returns the Q factor of a QR decomposition computed via
// modified Gram-Schmidt. gonum's QR only covers real matrices, so the complex
// case is done column by column here. A Gaussian matrix is almost surely full
// rank, so the column norms never vanish in practice; the guard below keeps
// the operation total anyway.
func orthonormalize(m *mat.CDense) *mat.CDense {
	n, _ := m.Dims()
	q := mat.NewCDense(n, n, nil)

	col := make([]complex128, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			col[i] = m.At(i, j)
		}

		// Subtract projections onto the already-orthonormal columns.
		for k := 0; k < j; k++ {
			var dot complex128
			for i := 0; i < n; i++ {
				qik := q.At(i, k)
				dot += complex(real(qik), -imag(qik)) * col[i]
			}
			for i := 0; i < n; i++ {
				col[i] -= dot * q.At(i, k)
			}
		}

		var norm float64
		for i := 0; i < n; i++ {
			norm += real(col[i])*real(col[i]) + imag(col[i])*imag(col[i])
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			// Degenerate column; fall back to a basis vector.
			for i := 0; i < n; i++ {
				col[i] = 0
			}
			col[j%n] = 1
			norm = 1
		}

		inv := complex(1/norm, 0)
		for i := 0; i < n; i++ {
			q.Set(i, j, col[i]*inv)
		}
	}

	return q
}

// newTensorNode samples a tensor for the given leg profile.
func newTensorNode(name string, dims []int, src UnitarySource) (*TensorNode, error) {
	data, err := src.NextUnitary(dims)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}
	return &TensorNode{Name: name, Dims: dims, Data: data}, nil
}
