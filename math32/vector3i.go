// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit volume rendering.

package math32

import "fmt"

// Dims is a list of vector dimension (component) names
type Dims int32

const (
	X Dims = iota
	Y
	Z
	W
)

// String returns the lower case name of the dimension.
func (d Dims) String() string {
	switch d {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	case W:
		return "w"
	}
	return fmt.Sprintf("Dims(%d)", int32(d))
}

// Vector3i is a 3D vector/point with X, Y and Z int32 components.
// It is used for voxel grid sizes and indexes.
type Vector3i struct {
	X int32
	Y int32
	Z int32
}

// Vec3i returns a new [Vector3i] with the given x, y and y components.
func Vec3i(x, y, z int32) Vector3i {
	return Vector3i{X: x, Y: y, Z: z}
}

// Set sets this vector X, Y and Z components.
func (v *Vector3i) Set(x, y, z int32) {
	v.X = x
	v.Y = y
	v.Z = z
}

// Dim returns this vector component
func (v Vector3i) Dim(dim Dims) int32 {
	switch dim {
	case X:
		return v.X
	case Y:
		return v.Y
	case Z:
		return v.Z
	default:
		panic("dim is out of range")
	}
}

func (v Vector3i) String() string {
	return fmt.Sprintf("%dx%dx%d", v.X, v.Y, v.Z)
}

// MaxComponent returns the largest of the X, Y, Z components.
func (v Vector3i) MaxComponent() int32 {
	return max(v.X, v.Y, v.Z)
}

// HasZero returns true if any component is zero or negative.
func (v Vector3i) HasZero() bool {
	return v.X <= 0 || v.Y <= 0 || v.Z <= 0
}

// Sub subtracts other vector from this one and returns result in new vector.
func (v Vector3i) Sub(other Vector3i) Vector3i {
	return Vector3i{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// SubScalar subtracts scalar s from each component of this vector and returns new vector.
func (v Vector3i) SubScalar(s int32) Vector3i {
	return Vector3i{v.X - s, v.Y - s, v.Z - s}
}
