// hedge-oracle is a decision stub for pricing pipelines: it reads a
// volatility figure from the command line and prints the hedge ratio a
// downstream system should apply. High-volatility regimes hedge at 0.8,
// calm regimes at 0.2.
package main

import (
	"fmt"
	"os"
	"strconv"
)

const volatilityThreshold = 0.5

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <volatility>\n", os.Args[0])
		os.Exit(2)
	}

	vol, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil || vol < 0 {
		fmt.Fprintf(os.Stderr, "error: volatility must be a non-negative number, got %q\n", os.Args[1])
		os.Exit(1)
	}

	ratio := 0.2
	if vol > volatilityThreshold {
		ratio = 0.8
	}

	fmt.Printf("%.1f\n", ratio)
}
