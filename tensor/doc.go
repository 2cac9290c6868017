// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays used by the gradflow
// autodiff engine.
//
// # Overview
//
// An Array is an immutable, row-major, n-dimensional array. Every operation
// returns a new Array, so arrays can be shared freely between graphs and
// goroutines.
//
// # Basic Usage
//
//	import "github.com/born-ml/gradflow/tensor"
//
//	func main() {
//	    x, _ := tensor.New(tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//	    y, _ := tensor.FromValue([][]float64{{1, 2}, {3, 4}})
//	    fmt.Println(x.Shape(), y) // (2, 3) [[1 2] [3 4]]
//	}
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules: shapes are aligned from
// the right and a dimension of size 1 stretches to match the other operand.
//
//	(3, 1) + (3, 4) -> (3, 4)
//	(4,)   + (3, 4) -> (3, 4)
//	(3,)   + (4,)   -> ErrShapeMismatch
package tensor
