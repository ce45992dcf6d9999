// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transfer provides the transfer function that maps normalized
// scalar values to RGBA color and opacity for volume rendering.
package transfer

import (
	"fmt"
	"sort"

	"cogentcore.org/volume/base/errors"
	"cogentcore.org/volume/math32"
	"github.com/jinzhu/copier"
)

// CacheSize is the number of buckets in the color lookup cache.
const CacheSize = 256

// ControlPoint is a single stop of a transfer function.
type ControlPoint struct {

	// Value is the normalized scalar value of the point, in [0, 1].
	Value float32 `toml:"value"`

	// Color is the RGBA color of the point, each channel in [0, 1].
	Color math32.Vector4 `toml:"color"`
}

// Function maps normalized scalar values to RGBA colors through a sorted
// list of control points, linearly interpolated into a lookup cache
// of [CacheSize] buckets. There are always at least two points.
type Function struct {
	points []ControlPoint

	cache [CacheSize]math32.Vector4
}

// New returns a new grayscale transfer function.
func New() *Function {
	return NewPreset(Grayscale)
}

// NewFromPoints returns a new transfer function with the given control
// points, sorted by value. At least two points are required.
func NewFromPoints(points ...ControlPoint) (*Function, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("transfer: need at least 2 control points, got %d", len(points))
	}
	f := &Function{}
	for _, p := range points {
		f.insert(p.Value, p.Color)
	}
	f.update()
	return f, nil
}

// Len returns the number of control points.
func (f *Function) Len() int {
	return len(f.points)
}

// Points returns a copy of the control points, in ascending order of value.
func (f *Function) Points() []ControlPoint {
	pts := make([]ControlPoint, len(f.points))
	copy(pts, f.points)
	return pts
}

// Clone returns a deep copy of the transfer function.
func (f *Function) Clone() *Function {
	cp := &Function{}
	// copier does not see unexported fields, so the points go through
	// the exported slice form
	var pts []ControlPoint
	errors.Log(copier.CopyWithOption(&pts, f.points, copier.Option{DeepCopy: true}))
	cp.points = pts
	cp.cache = f.cache
	return cp
}

// Color2D returns the grayscale color for the given value, clamped to [0, 1],
// with full opacity. It does not depend on the control points.
func (f *Function) Color2D(v float32) math32.Vector4 {
	v = clampUnit(v)
	return math32.Vec4(v, v, v, 1)
}

// Color3D returns the cached color for the given value, clamped to [0, 1].
func (f *Function) Color3D(v float32) math32.Vector4 {
	return f.cache[bucket(v)]
}

// AddPoint inserts a control point, after any existing points with the
// same value. The value and color channels are clamped to [0, 1].
func (f *Function) AddPoint(value float32, color math32.Vector4) {
	f.insert(value, color)
	f.update()
}

// RemovePoint removes the control point at the given index, returning
// false without changing anything if the index is out of range or
// fewer than two points would remain.
func (f *Function) RemovePoint(index int) bool {
	if index < 0 || index >= len(f.points) || len(f.points) <= 2 {
		return false
	}
	f.points = append(f.points[:index], f.points[index+1:]...)
	f.update()
	return true
}

// SetPoint replaces the control point at the given index, moving it to
// keep the points sorted. It returns false if the index is out of range.
func (f *Function) SetPoint(index int, value float32, color math32.Vector4) bool {
	if index < 0 || index >= len(f.points) {
		return false
	}
	f.points = append(f.points[:index], f.points[index+1:]...)
	f.insert(value, color)
	f.update()
	return true
}

// insert adds a clamped point in sorted position without updating the cache.
func (f *Function) insert(value float32, color math32.Vector4) {
	value = clampUnit(value)
	color.Clamp(math32.Vector4{}, math32.Vector4Scalar(1))
	i := sort.Search(len(f.points), func(i int) bool {
		return f.points[i].Value > value
	})
	f.points = append(f.points, ControlPoint{})
	copy(f.points[i+1:], f.points[i:])
	f.points[i] = ControlPoint{Value: value, Color: color}
}

// update rebuilds the color cache from the control points.
func (f *Function) update() {
	for i := range f.cache {
		f.cache[i] = f.interpolate(float32(i) / (CacheSize - 1))
	}
}

// interpolate returns the color at v computed directly from the control points.
func (f *Function) interpolate(v float32) math32.Vector4 {
	n := len(f.points)
	if n == 0 {
		return math32.Vector4{}
	}
	// index of the first point with Value > v
	hi := sort.Search(n, func(i int) bool {
		return f.points[i].Value > v
	})
	if hi == 0 {
		return f.points[0].Color
	}
	lo := f.points[hi-1]
	if hi == n {
		return lo.Color
	}
	next := f.points[hi]
	span := next.Value - lo.Value
	if span <= 0 {
		return lo.Color
	}
	return lo.Color.Lerp(next.Color, (v-lo.Value)/span)
}

// bucket returns the cache index for v; NaN maps to 0.
func bucket(v float32) int {
	v = clampUnit(v)
	return min(int(v*(CacheSize-1)), CacheSize-1)
}

// clampUnit clamps v to [0, 1], mapping NaN to 0.
func clampUnit(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
