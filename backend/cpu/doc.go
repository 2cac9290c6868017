// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the autodiff engine.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO) on top of gonum
//   - Float64 arithmetic
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gradflow/autodiff"
//	    "github.com/born-ml/gradflow/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithParallel(cpu.SequentialConfig()))
//	    engine := autodiff.New(backend)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// result and does not share mutable state.
package cpu
