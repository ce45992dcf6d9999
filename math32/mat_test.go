// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TolAssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	assert.InDelta(t, vt.X, va.X, float64(tol))
	assert.InDelta(t, vt.Y, va.Y, float64(tol))
	assert.InDelta(t, vt.Z, va.Z, float64(tol))
}

const StandardTol = float32(1.0e-5)

func TestMatrix4Mul(t *testing.T) {
	id := Identity4()
	var tr Matrix4
	tr.Set(
		1, 0, 0, 2,
		0, 1, 0, 3,
		0, 0, 1, 4,
		0, 0, 0, 1,
	)
	assert.Equal(t, tr, *id.Mul(&tr))
	assert.Equal(t, tr, *tr.Mul(id))

	p := Vec3(1, 1, 1).MulMatrix4(tr.Mul(&tr))
	assert.Equal(t, Vec3(5, 7, 9), p)
	assert.Equal(t, float32(2), tr.At(0, 3))
}

func TestLookAtView(t *testing.T) {
	eye := Vec3(0, 0, 5)
	view := NewLookAtView(eye, Vec3(0, 0, 0), Vec3(0, 1, 0))

	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, 0), eye.MulMatrix4(view))
	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, -5), Vec3(0, 0, 0).MulMatrix4(view))
	TolAssertEqualVector(t, StandardTol, Vec3(1, 0, -5), Vec3(1, 0, 0).MulMatrix4(view))
	TolAssertEqualVector(t, StandardTol, Vec3(0, 1, -5), Vec3(0, 1, 0).MulMatrix4(view))

	// looking down the X axis from the right: world -Z is camera right
	side := NewLookAtView(Vec3(5, 0, 0), Vec3(0, 0, 0), Vec3(0, 1, 0))
	TolAssertEqualVector(t, StandardTol, Vec3(1, 0, -5), Vec3(0, 0, -1).MulMatrix4(side))
}

func TestPerspective(t *testing.T) {
	var prjn Matrix4
	prjn.SetPerspective(90, 1, 0.1, 100)

	near := Vec3(0, 0, -0.1).MulProjection(&prjn)
	far := Vec3(0, 0, -100).MulProjection(&prjn)
	assert.InDelta(t, -1, near.Z, 1e-4)
	assert.InDelta(t, 1, far.Z, 1e-4)

	// 90 degree fov: a point at 45 degrees lands on the frustum edge
	edge := Vec3(1, 1, -1).MulProjection(&prjn)
	assert.InDelta(t, 1, edge.X, 1e-5)
	assert.InDelta(t, 1, edge.Y, 1e-5)

	prjn.SetPerspective(90, 2, 0.1, 100)
	edge = Vec3(2, 1, -1).MulProjection(&prjn)
	assert.InDelta(t, 1, edge.X, 1e-5)
}

func TestMatrix4Inverse(t *testing.T) {
	view := NewLookAtView(Vec3(1, 2, 5), Vec3(0, 0.5, 0), Vec3(0, 1, 0))
	var prjn Matrix4
	prjn.SetPerspective(45, 1.5, 0.1, 100)
	vp := prjn.Mul(view)

	inv, err := vp.Inverse()
	require.NoError(t, err)
	prod := vp.Mul(inv)
	id := Identity4()
	for i := range prod {
		assert.InDelta(t, id[i], prod[i], 1e-4, "element %d", i)
	}

	pts := []Vector3{{0, 0, 0}, {0.5, 0.5, 0.5}, {-0.5, 0.25, -0.1}}
	for _, pt := range pts {
		ndc := pt.MulProjection(vp)
		TolAssertEqualVector(t, 1e-4, pt, ndc.MulProjection(inv))
	}
}

func TestMatrix4Singular(t *testing.T) {
	var zero Matrix4
	inv, err := zero.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
	assert.Equal(t, *Identity4(), *inv)
	assert.Equal(t, float32(0), zero.Determinant())
	assert.Equal(t, float32(1), Identity4().Determinant())
}

func TestQuatRotation(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), Pi/2)
	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))
	TolAssertEqualVector(t, StandardTol, Vec3(1, 0, 0), Vec3(0, 0, 1).MulQuat(q))

	// q.Mul(p) applies p first
	p := NewQuatAxisAngle(Vec3(1, 0, 0), -Pi/2)
	qp := q.Mul(p)
	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, 1).MulQuat(p).MulQuat(q), Vec3(0, 0, 1).MulQuat(qp))
	TolAssertEqualVector(t, StandardTol, Vec3(0, 1, 0), Vec3(0, 0, 1).MulQuat(qp))

	assert.InDelta(t, 1, qp.Length(), 1e-6)
	assert.True(t, Quat{W: 1}.IsIdentity())
	TolAssertEqualVector(t, StandardTol, Vec3(1, 0, 0), Vec3(1, 0, 0).MulQuat(q).MulQuat(q.Conjugate()))
}

func TestVector3Cross(t *testing.T) {
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
	assert.InDelta(t, 1, Vec3(3, 4, 12).Normal().Length(), 1e-6)
	assert.Equal(t, float32(13), Vec3(3, 4, 12).Length())
}
