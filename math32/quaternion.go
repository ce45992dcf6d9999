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

// Quat is quaternion with X,Y,Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// NewQuatAxisAngle returns a new quaternion from the specified axis and angle
// (in radians). The axis must be normalized.
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	s, c := Sincos(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// IsIdentity returns true if this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

func (q Quat) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", q.X, q.Y, q.Z, q.W)
}

// Length returns the length of this quaternion
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize normalizes this quaternion.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		q.X = 0
		q.Y = 0
		q.Z = 0
		q.W = 1
		return
	}
	l = 1 / l
	q.X *= l
	q.Y *= l
	q.Z *= l
	q.W *= l
}

// Conjugate returns the conjugate of this quaternion,
// which for a unit quaternion is its inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Mul returns the product q * other. Applied to a vector, the
// result rotates by other first and then by q.
func (q Quat) Mul(other Quat) Quat {
	// from http://www.euclideanspace.com/maths/algebra/realNormedAlgebra/quaternions/code/index.htm
	qax := q.X
	qay := q.Y
	qaz := q.Z
	qaw := q.W
	qbx := other.X
	qby := other.Y
	qbz := other.Z
	qbw := other.W
	return Quat{
		X: qax*qbw + qaw*qbx + qay*qbz - qaz*qby,
		Y: qay*qbw + qaw*qby + qaz*qbx - qax*qbz,
		Z: qaz*qbw + qaw*qbz + qax*qby - qay*qbx,
		W: qaw*qbw - qax*qbx - qay*qby - qaz*qbz,
	}
}
