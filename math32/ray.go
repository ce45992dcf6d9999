// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
// The direction is used as given; callers normalize it.
func NewRay(origin, dir Vector3) *Ray {
	return &Ray{Origin: origin, Dir: dir}
}

// NewRayThrough returns a ray starting at from and pointing
// toward to, with a normalized direction.
func NewRayThrough(from, to Vector3) *Ray {
	return &Ray{Origin: from, Dir: to.Sub(from).Normal()}
}

// At returns the point along the ray at distance t from the origin.
func (ray *Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// IntersectBox returns the parametric entry and exit distances of this ray
// through the given axis-aligned box, using the slab method. ok is false
// when the ray misses the box, when the interval collapses to a single
// point, or when the box lies entirely behind the origin. tmin is negative
// when the origin lies inside the box.
func (ray *Ray) IntersectBox(box Box3) (tmin, tmax float32, ok bool) {
	tmin = Inf(-1)
	tmax = Inf(1)
	for d := X; d <= Z; d++ {
		invDir := 1 / ray.Dir.Dim(d)
		o := ray.Origin.Dim(d)
		t0 := (box.Min.Dim(d) - o) * invDir
		t1 := (box.Max.Dim(d) - o) * invDir
		if invDir < 0 {
			t0, t1 = t1, t0
		}
		// NaN slabs (origin exactly on a plane parallel to the ray) leave
		// the interval unchanged
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmax <= tmin {
			return tmin, tmax, false
		}
	}
	if tmax <= 0 {
		return tmin, tmax, false
	}
	return tmin, tmax, true
}
