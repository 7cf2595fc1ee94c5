package holography

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Root and child leg profiles. Five legs for the bulk center tensor, three
// for every expansion node; all legs are qubit-dimensional.
var (
	rootDims  = []int{2, 2, 2, 2, 2}
	childDims = []int{2, 2, 2}
)

// EncodedState is the boundary bit sequence produced by encoding. It is
// ephemeral output: consumed by a recovery test or discarded.
type EncodedState []int

// ErasurePattern marks boundary sites as known (non-nil bit) or erased (nil).
// Its length must equal the boundary count of the network it is tested on.
type ErasurePattern []*int

// ErasedIndices returns the positions of erased sites in ascending order.
func (p ErasurePattern) ErasedIndices() []int {
	var erased []int
	for i, v := range p {
		if v == nil {
			erased = append(erased, i)
		}
	}
	return erased
}

// Network is a bulk-to-boundary tensor network: a strict binary tree with a
// five-leg root at the bulk center and three-leg nodes below, the final layer
// exposed as boundary qubits. Topology is fixed at construction; encode and
// recover are read-only queries.
type Network struct {
	layers   int
	root     *TensorNode
	nodes    []*TensorNode
	boundary []*TensorNode
	log      zerolog.Logger
}

// NewNetwork builds a network with the given number of layers. Construction
// is atomic: on any failure no partially built network is returned.
//
// Nodes are created in breadth-first order, root first and then each layer
// left to right, so a seeded UnitarySource yields bit-identical topologies
// across runs and boundary index i always names the same physical leaf.
func NewNetwork(layers int, src UnitarySource, log zerolog.Logger) (*Network, error) {
	if layers < 1 {
		return nil, fmt.Errorf("layer count %d must be at least 1: %w", layers, ErrConfig)
	}

	root, err := newTensorNode("bulk_0", rootDims, src)
	if err != nil {
		return nil, err
	}

	n := &Network{
		layers: layers,
		root:   root,
		nodes:  []*TensorNode{root},
		log:    log.With().Str("component", "holography").Logger(),
	}

	// Frontier expansion: each pass replaces the frontier with the ordered
	// concatenation of every node's two children. For layers == 1 the root's
	// free legs double as the boundary.
	frontier := []*TensorNode{root}
	for l := 1; l < layers; l++ {
		next := make([]*TensorNode, 0, 2*len(frontier))
		for i := range frontier {
			left, err := newTensorNode(fmt.Sprintf("bulk_%d_%d_l", l, i), childDims, src)
			if err != nil {
				return nil, err
			}
			right, err := newTensorNode(fmt.Sprintf("bulk_%d_%d_r", l, i), childDims, src)
			if err != nil {
				return nil, err
			}
			next = append(next, left, right)
		}
		n.nodes = append(n.nodes, next...)
		frontier = next
	}
	n.boundary = frontier

	n.log.Debug().
		Int("layers", layers).
		Int("nodes", len(n.nodes)).
		Int("boundary_qubits", len(n.boundary)).
		Msg("Network constructed")

	return n, nil
}

// Layers returns the layer count the network was built with.
func (n *Network) Layers() int {
	return n.layers
}

// Root returns the bulk center tensor.
func (n *Network) Root() *TensorNode {
	return n.root
}

// Nodes returns all tensors in construction (breadth-first) order.
func (n *Network) Nodes() []*TensorNode {
	return n.nodes
}

// BoundaryCount returns the number of boundary qubits: 2^(layers-1), or 1
// for a single-layer network.
func (n *Network) BoundaryCount() int {
	return len(n.boundary)
}

// BoundaryEntropy is the Ryu-Takayanagi-style entanglement entropy proxy for
// the full boundary: ln(2) per maximally entangled boundary site. Diagnostic
// only; it gates no control flow.
func (n *Network) BoundaryEntropy() float64 {
	return math.Ln2 * float64(len(n.boundary))
}

// EncodeLogicalBit maps a logical bit to a boundary state. The bit is
// broadcast to every boundary site in place of a full amplitude-preserving
// contraction; this is the documented approximation of the toy model.
func (n *Network) EncodeLogicalBit(bit int) (EncodedState, error) {
	if bit != 0 && bit != 1 {
		return nil, fmt.Errorf("logical bit %d must be 0 or 1: %w", bit, ErrConfig)
	}

	n.log.Info().Int("bit", bit).Int("layers", n.layers).Msg("Encoding logical bit into bulk")

	state := make(EncodedState, len(n.boundary))
	for i := range state {
		state[i] = bit
	}

	n.log.Info().
		Float64("entropy", n.BoundaryEntropy()).
		Int("boundary_qubits", len(n.boundary)).
		Msg("Boundary state prepared")

	return state, nil
}

// RecoverFromErasure decides whether the logical information survives the
// given erasure pattern. Reconstruction is possible iff the erased sites
// stay strictly under half the boundary; real division keeps the threshold
// strict for odd boundary counts. This is a binary feasibility test, not a
// contraction, so no reconstruction artifact is produced.
func (n *Network) RecoverFromErasure(pattern ErasurePattern) (bool, error) {
	if len(pattern) != len(n.boundary) {
		return false, fmt.Errorf("erasure pattern length %d does not match boundary count %d: %w",
			len(pattern), len(n.boundary), ErrShape)
	}

	erased := pattern.ErasedIndices()
	n.log.Info().Ints("erased_indices", erased).Msg("Detected boundary erasures")

	recoverable := float64(len(erased)) < float64(len(n.boundary))/2
	if recoverable {
		n.log.Info().Msg("Reconstruction possible via causal wedge")
	} else {
		n.log.Warn().Msg("Erasure too large; information lost behind the horizon")
	}

	return recoverable, nil
}
