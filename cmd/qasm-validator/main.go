// qasm-validator checks an OpenQASM 2.0 file for structural problems and
// prints a short report. Exit status is non-zero when the program is invalid.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aristath/horizon/internal/qasm"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.qasm>\n", os.Args[0])
		os.Exit(2)
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	report, err := qasm.Validate(string(source))
	if err != nil {
		if errors.Is(err, qasm.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("valid OPENQASM %s\n", report.Version)
	fmt.Printf("  qubit registers:  %d\n", report.QubitRegisters)
	fmt.Printf("  classical bits:   %d\n", report.ClassicalBits)
	fmt.Printf("  gates:            %d\n", report.GateCount)
	fmt.Printf("  measurements:     %d\n", report.MeasureCount)
	fmt.Printf("  feed-forward:     %v\n", report.FeedForward)
}
