// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides the public API for dense float64 arrays.
//
// # Overview
//
// This package contains:
//   - Array: n-dimensional row-major array with broadcasting
//   - Shape: dimension list with broadcast helpers
//   - Creation: Zeros, Ones, Full, Eye, Arange, Linspace, Randn, FromSparse
//   - Linear algebra: MatMul, Matvec, Inv, Einsum over batched operands
//   - Interop: AsDense, FromDense against gonum matrices
//
// Shape errors panic, following the rule that malformed dimensions are
// caller bugs; fallible construction returns errors.
//
// # Basic Usage
//
//	import "github.com/manifold-ml/manifold/array"
//
//	func main() {
//	    a := array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2})
//	    b := array.Eye(2)
//	    c := array.MatMul(a, b.MulScalar(2))
//	    fmt.Println(c.At(1, 0)) // 6
//	}
package array
