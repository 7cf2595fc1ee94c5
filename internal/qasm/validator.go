// Package qasm provides lightweight validation of OpenQASM circuit programs
// before they are handed off to an external SDK or executive. It is a
// structural check, not a full parser: version header, register
// declarations, gate/register references, and feed-forward detection.
package qasm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid is returned for programs that fail structural validation.
var ErrInvalid = errors.New("qasm: invalid program")

// Report summarizes a validated program.
type Report struct {
	Version        string `json:"version"`
	QubitRegisters int    `json:"qubit_registers"`
	ClassicalBits  int    `json:"classical_bits"`
	GateCount      int    `json:"gate_count"`
	MeasureCount   int    `json:"measure_count"`
	FeedForward    bool   `json:"feed_forward"`
}

var (
	versionRe = regexp.MustCompile(`^OPENQASM\s+(\d+(?:\.\d+)?)\s*;`)
	qregRe    = regexp.MustCompile(`^qreg\s+\w+\[(\d+)\]\s*;`)
	cregRe    = regexp.MustCompile(`^creg\s+\w+\[(\d+)\]\s*;`)
	// feed-forward: mid-circuit conditionals on measurement results
	feedForwardRe = regexp.MustCompile(`\bif\s*\(|c_if`)
)

// Validate checks a circuit program and returns its report. Structural
// failures wrap ErrInvalid so callers can match with errors.Is.
func Validate(source string) (*Report, error) {
	report := &Report{}

	lines := strings.Split(source, "\n")
	sawVersion := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if m := versionRe.FindStringSubmatch(line); m != nil {
			if sawVersion {
				return nil, fmt.Errorf("duplicate OPENQASM version header: %w", ErrInvalid)
			}
			sawVersion = true
			report.Version = m[1]
			continue
		}

		if !sawVersion {
			return nil, fmt.Errorf("program must start with an OPENQASM version header: %w", ErrInvalid)
		}

		switch {
		case strings.HasPrefix(line, "include"):
			// Library includes carry no structure to check.
		case strings.HasPrefix(line, "qreg"):
			m := qregRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("malformed qreg declaration %q: %w", line, ErrInvalid)
			}
			report.QubitRegisters++
		case strings.HasPrefix(line, "creg"):
			m := cregRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("malformed creg declaration %q: %w", line, ErrInvalid)
			}
			bits, _ := strconv.Atoi(m[1])
			report.ClassicalBits += bits
		case strings.HasPrefix(line, "measure"):
			report.MeasureCount++
		case strings.HasPrefix(line, "barrier"):
			// Barriers are scheduling hints only.
		default:
			if report.QubitRegisters == 0 {
				return nil, fmt.Errorf("gate statement before any qreg declaration: %w", ErrInvalid)
			}
			report.GateCount++
		}

		if feedForwardRe.MatchString(line) {
			report.FeedForward = true
		}
	}

	if !sawVersion {
		return nil, fmt.Errorf("empty program: %w", ErrInvalid)
	}
	if report.QubitRegisters == 0 {
		return nil, fmt.Errorf("program declares no qubit registers: %w", ErrInvalid)
	}

	return report, nil
}
