// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit volume rendering.

package math32

import "errors"

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// ErrSingular is returned when inverting a matrix whose determinant is 0.
var ErrSingular = errors.New("math32: cannot invert matrix, determinant is 0")

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// At returns the element at the given row and column.
func (m *Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// MulMatrices sets this matrix as matrix multiplication a by b (i.e., a * b).
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c*4+row] = a[row]*b[c*4] + a[4+row]*b[c*4+1] + a[8+row]*b[c*4+2] + a[12+row]*b[c*4+3]
		}
	}
	*m = r
}

// SetLookAtView sets this matrix to a right-handed view matrix for a camera
// at eye looking toward target, with the given up direction. It maps eye to
// the origin with target along the negative Z axis.
func (m *Matrix4) SetLookAtView(eye, target, up Vector3) {
	f := target.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	m.Set(
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	)
}

// NewLookAtView returns a view matrix as set by [Matrix4.SetLookAtView].
func NewLookAtView(eye, target, up Vector3) *Matrix4 {
	m := &Matrix4{}
	m.SetLookAtView(eye, target, up)
	return m
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified vertical field of view in degrees,
// aspect ratio (width / height) and near and far planes.
// Depth maps to normalized device coordinates in [-1, 1].
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	f := 1 / Tan(DegToRad(fov)*0.5)
	nf := 1 / (near - far)
	m.Set(
		f/aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far+near)*nf, 2*far*near*nf,
		0, 0, -1, 0,
	)
}

// Determinant calculates and returns the determinant of this matrix.
func (m *Matrix4) Determinant() float32 {
	inv := m.cofactors()
	return m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
}

// SetInverse sets this matrix to the inverse of the src matrix.
// If the src matrix cannot be inverted returns error and
// sets this matrix to the identity matrix.
func (m *Matrix4) SetInverse(src *Matrix4) error {
	inv := src.cofactors()
	det := src[0]*inv[0] + src[1]*inv[4] + src[2]*inv[8] + src[3]*inv[12]
	if det == 0 || !IsFinite(det) {
		m.SetIdentity()
		return ErrSingular
	}
	det = 1 / det
	for i := range inv {
		m[i] = inv[i] * det
	}
	return nil
}

// Inverse returns the inverse of this matrix.
// If the matrix cannot be inverted returns error and identity matrix.
func (m *Matrix4) Inverse() (*Matrix4, error) {
	nm := &Matrix4{}
	err := nm.SetInverse(m)
	return nm, err
}

// cofactors returns the transposed cofactor matrix (the adjugate).
func (m *Matrix4) cofactors() Matrix4 {
	var inv Matrix4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]
	return inv
}
