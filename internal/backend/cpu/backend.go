// Package cpu implements the CPU backend on top of gonum.
//
// Same-shape element-wise kernels run through gonum/floats, matrix products through
// gonum/mat, and broadcasting kernels fall back to an index-mapping loop that is split
// across goroutines with internal/parallel once arrays are large enough.
package cpu

import (
	"github.com/born-ml/gradflow/internal/parallel"
	"github.com/born-ml/gradflow/internal/tensor"
)

// CPUBackend implements tensor.Backend on the CPU.
type CPUBackend struct {
	parallel parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel overrides the parallel execution settings used by broadcasting kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.parallel = cfg
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Parallel returns the parallel execution settings.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}

var _ tensor.Backend = (*CPUBackend)(nil)
