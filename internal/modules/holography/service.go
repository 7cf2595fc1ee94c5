package holography

import (
	"sync"

	"github.com/aristath/horizon/internal/events"
	"github.com/rs/zerolog"
)

// RunRecorder persists experiment runs for the audit trail. Recording
// failures are logged and never fail the operation itself.
type RunRecorder interface {
	RecordEncode(layers int, bit int, entropy float64) error
	RecordRecovery(layers int, erased []int, recoverable bool) error
}

// NetworkInfo summarizes the currently built network.
type NetworkInfo struct {
	Layers        int     `json:"layers"`
	Seed          int64   `json:"seed"`
	NodeCount     int     `json:"node_count"`
	BoundaryCount int     `json:"boundary_count"`
	Entropy       float64 `json:"entropy"`
}

// Service owns the current holographic network and exposes encode/recover
// operations on it. Rebuilding swaps the network atomically; the old one is
// discarded only after the new one is fully constructed.
type Service struct {
	mu       sync.Mutex
	network  *Network
	seed     int64
	bus      *events.Bus
	recorder RunRecorder
	log      zerolog.Logger
}

// NewService builds the initial network and returns the service. bus and
// recorder may be nil (no trace streaming / no audit trail).
func NewService(layers int, seed int64, bus *events.Bus, recorder RunRecorder, log zerolog.Logger) (*Service, error) {
	svcLog := log.With().Str("service", "holography").Logger()

	network, err := NewNetwork(layers, NewGaussianSource(seed), svcLog)
	if err != nil {
		return nil, err
	}

	return &Service{
		network:  network,
		seed:     seed,
		bus:      bus,
		recorder: recorder,
		log:      svcLog,
	}, nil
}

// Rebuild replaces the network with a freshly constructed one. On failure
// the previous network stays in place.
func (s *Service) Rebuild(layers int, seed int64) error {
	network, err := NewNetwork(layers, NewGaussianSource(seed), s.log)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.network = network
	s.seed = seed
	s.mu.Unlock()

	s.publish(events.NetworkRebuilt, map[string]interface{}{
		"layers":         layers,
		"seed":           seed,
		"boundary_count": network.BoundaryCount(),
	})

	return nil
}

// Info returns a summary of the current network.
func (s *Service) Info() NetworkInfo {
	s.mu.Lock()
	network, seed := s.network, s.seed
	s.mu.Unlock()

	return NetworkInfo{
		Layers:        network.Layers(),
		Seed:          seed,
		NodeCount:     len(network.Nodes()),
		BoundaryCount: network.BoundaryCount(),
		Entropy:       network.BoundaryEntropy(),
	}
}

// Encode encodes a logical bit and returns the boundary state together with
// the entropy proxy.
func (s *Service) Encode(bit int) (EncodedState, float64, error) {
	s.mu.Lock()
	network := s.network
	s.mu.Unlock()

	state, err := network.EncodeLogicalBit(bit)
	if err != nil {
		return nil, 0, err
	}
	entropy := network.BoundaryEntropy()

	if s.recorder != nil {
		if err := s.recorder.RecordEncode(network.Layers(), bit, entropy); err != nil {
			s.log.Error().Err(err).Msg("Failed to record encode run")
		}
	}
	s.publish(events.StateEncoded, map[string]interface{}{
		"bit":     bit,
		"entropy": entropy,
	})

	return state, entropy, nil
}

// Recover evaluates an erasure pattern and returns the verdict together with
// the erased indices.
func (s *Service) Recover(pattern ErasurePattern) (bool, []int, error) {
	s.mu.Lock()
	network := s.network
	s.mu.Unlock()

	recoverable, err := network.RecoverFromErasure(pattern)
	if err != nil {
		return false, nil, err
	}
	erased := pattern.ErasedIndices()

	if s.recorder != nil {
		if err := s.recorder.RecordRecovery(network.Layers(), erased, recoverable); err != nil {
			s.log.Error().Err(err).Msg("Failed to record recovery run")
		}
	}
	s.publish(events.RecoveryTested, map[string]interface{}{
		"erased_indices": erased,
		"recoverable":    recoverable,
	})

	return recoverable, erased, nil
}

func (s *Service) publish(eventType events.EventType, data map[string]interface{}) {
	if s.bus != nil {
		s.bus.Publish(eventType, data)
	}
}
