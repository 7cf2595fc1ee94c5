package holography

import "errors"

// Sentinel errors for the holography module. Callers match with errors.Is;
// wrapping sites add context via fmt.Errorf("...: %w", Err...).
var (
	// ErrConfig is returned for invalid construction or encode parameters
	// (layer count below 1, logical bit outside {0,1}).
	ErrConfig = errors.New("holography: invalid configuration")

	// ErrShape is returned for dimensional violations (non-positive leg
	// dimensions, erasure pattern length mismatched with the boundary).
	ErrShape = errors.New("holography: shape mismatch")
)
