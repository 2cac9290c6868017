package tensor

import "github.com/pkg/errors"

// Sentinel errors shared by the numeric backends and the autodiff graph.
// Callers match them with errors.Is; the wrapped message carries the details.
var (
	// ErrShapeMismatch reports operands whose shapes cannot be combined by the
	// requested operation, or a gradient whose shape differs from its target.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDomain reports a numeric rule evaluated outside its valid domain,
	// e.g. the logarithm of a non-positive base or division by zero.
	ErrDomain = errors.New("numeric domain error")
)
