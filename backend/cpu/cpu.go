// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/gradflow/internal/backend/cpu"
	"github.com/born-ml/gradflow/internal/parallel"
	"github.com/born-ml/gradflow/tensor"
)

// Backend represents the CPU backend implementation.
//
// Matrix products run through gonum/mat, element-wise kernels through
// gonum/floats, and broadcasting kernels are split across goroutines for
// large arrays.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// ParallelConfig controls how broadcasting kernels are split across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig uses all CPUs for arrays of at least 4096 elements.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig disables parallel execution.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// WithParallel overrides the parallel execution settings.
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradflow/autodiff"
//	    "github.com/born-ml/gradflow/backend/cpu"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
