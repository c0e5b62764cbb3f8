// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array_test

import (
	"testing"

	"github.com/manifold-ml/manifold/array"
)

// TestPublicSurface exercises the re-exported construction and linear
// algebra entry points.
func TestPublicSurface(t *testing.T) {
	a := array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2})
	if got := a.At(1, 0); got != 3 {
		t.Errorf("At(1, 0) = %v, want 3", got)
	}

	b := array.MatMul(a, array.Eye(2))
	if !array.AllClose(a, b) {
		t.Errorf("MatMul with identity changed the array: %v", b.Data())
	}

	s := array.Einsum("ij,ij->", a, a)
	if got := s.Item(); got != 30 {
		t.Errorf("Einsum self contraction = %v, want 30", got)
	}

	inv := array.Inv(array.MustFromSlice([]float64{2, 0, 0, 4}, array.Shape{2, 2}))
	want := array.MustFromSlice([]float64{0.5, 0, 0, 0.25}, array.Shape{2, 2})
	if !array.AllClose(want, inv) {
		t.Errorf("Inv = %v, want %v", inv.Data(), want.Data())
	}
}

// TestShapeHelpers checks the Shape alias round trip.
func TestShapeHelpers(t *testing.T) {
	s, stretched, err := array.BroadcastShapes(array.Of(3, 1), array.Of(3, 5))
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !s.Equal(array.Shape{3, 5}) || !stretched {
		t.Errorf("BroadcastShapes = %v, stretched %v", s, stretched)
	}
}
