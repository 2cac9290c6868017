package tensor

// Backend defines the numeric-array capability the autodiff graph is built on.
// Backends handle the actual computation; they never mutate their inputs and
// report incompatible shapes with errors wrapping ErrShapeMismatch.
//
// Element-wise binary operations follow NumPy broadcasting (see BroadcastShapes).
// Backends apply plain IEEE-754 semantics: domain checks belong to the caller.
//
// Implementations:
//   - CPU: pure Go on top of gonum (internal/backend/cpu)
type Backend interface {
	// Element-wise binary operations (broadcasting)
	Add(a, b *Array) (*Array, error)
	Mul(a, b *Array) (*Array, error)
	Pow(a, b *Array) (*Array, error)
	Greater(a, b *Array) (*Array, error) // 1 where a > b, else 0

	// Element-wise unary operations
	Neg(x *Array) *Array
	Log(x *Array) *Array

	// Matrix operations (rank-2 only)
	MatMul(a, b *Array) (*Array, error)
	Transpose(x *Array) (*Array, error)

	// Reductions and broadcasting
	SumLeading(x *Array) (*Array, error)               // sum over axis 0, dropping it
	BroadcastTo(x *Array, shape Shape) (*Array, error) // expand x to shape
	ReduceTo(x *Array, shape Shape) (*Array, error)    // sum x over the axes broadcast from shape

	// Metadata
	Name() string
}
