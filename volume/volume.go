// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package volume provides the scalar volume data that is rendered,
// built from a stack of equal-sized 2D planes.
package volume

import (
	"errors"
	"fmt"
	"math/bits"

	"cogentcore.org/volume/math32"
)

// MaxElements is the largest number of scalar values a volume can hold:
// 256 MiB of float32 values.
const MaxElements = 256 * 1024 * 1024 / 4

var (
	// ErrNoPlanes is returned when loading a volume from no planes.
	ErrNoPlanes = errors.New("no valid slices found")

	// ErrInconsistentPlanes is returned when planes differ in size,
	// or a plane has the wrong number of values for its size.
	ErrInconsistentPlanes = errors.New("inconsistent slice dimensions")

	// ErrTooLarge is returned when the volume exceeds [MaxElements].
	ErrTooLarge = errors.New("image data too large to fit in memory")

	// ErrOverflow is returned when the element count overflows.
	ErrOverflow = errors.New("integer overflow in size calculation")
)

// Plane is one 2D slice of scalar samples, as produced by a decoder,
// stored row by row with x fastest.
type Plane struct {
	Width  int
	Height int
	Values []uint16
}

// NewPlane returns a new zero-valued plane of the given size.
func NewPlane(width, height int) Plane {
	return Plane{Width: width, Height: height, Values: make([]uint16, width*height)}
}

// Set sets the value at the given pixel.
func (p *Plane) Set(x, y int, v uint16) {
	p.Values[y*p.Width+x] = v
}

// Data is a 3D scalar volume. It is not modified after construction;
// loading new data replaces the whole value.
type Data struct {

	// Values are the samples with x fastest, then y, then z.
	Values []float32

	// Dims are the width, height, and depth of the volume.
	Dims math32.Vector3i

	// Min and Max are the value range used to normalize samples.
	Min, Max float32
}

// FromPlanes returns the volume stacking the given planes along z.
// The value range is (0, 65535) if any sample exceeds 255, else (0, 255).
func FromPlanes(planes []Plane) (*Data, error) {
	if len(planes) == 0 {
		return nil, ErrNoPlanes
	}
	w, h := planes[0].Width, planes[0].Height
	for i, p := range planes {
		if p.Width != w || p.Height != h {
			return nil, fmt.Errorf("%w: slice %d is %dx%d, want %dx%d", ErrInconsistentPlanes, i, p.Width, p.Height, w, h)
		}
	}
	n, err := elements(w, h, len(planes))
	if err != nil {
		return nil, err
	}
	for i, p := range planes {
		if len(p.Values) != w*h {
			return nil, fmt.Errorf("%w: slice %d has %d values, want %d", ErrInconsistentPlanes, i, len(p.Values), w*h)
		}
	}

	is16 := false
	vals := make([]float32, 0, n)
	for _, p := range planes {
		for _, v := range p.Values {
			if v > 255 {
				is16 = true
			}
			vals = append(vals, float32(v))
		}
	}
	d := &Data{Values: vals, Max: 255}
	if is16 {
		d.Max = 65535
	}
	d.Dims.Set(int32(w), int32(h), int32(len(planes)))
	return d, nil
}

// elements returns w*h*d, checking for overflow and the size budget.
func elements(w, h, d int) (int, error) {
	if w < 0 || h < 0 {
		return 0, fmt.Errorf("%w: negative slice size %dx%d", ErrInconsistentPlanes, w, h)
	}
	hi, wh := bits.Mul(uint(w), uint(h))
	if hi != 0 {
		return 0, ErrOverflow
	}
	hi, n := bits.Mul(wh, uint(d))
	if hi != 0 {
		return 0, ErrOverflow
	}
	if n > MaxElements {
		return 0, fmt.Errorf("%w: %d values exceeds %d", ErrTooLarge, n, MaxElements)
	}
	return int(n), nil
}

// Len returns the number of samples.
func (d *Data) Len() int {
	return len(d.Values)
}

// Is2D returns true if the volume is a single slice.
func (d *Data) Is2D() bool {
	return d.Dims.Z == 1
}

// Index returns the flat index of the given voxel.
func (d *Data) Index(x, y, z int) int {
	w, h := int(d.Dims.X), int(d.Dims.Y)
	return (z*h+y)*w + x
}

// Sample returns the raw value at the given voxel, and false if
// the voxel is outside the volume.
func (d *Data) Sample(x, y, z int) (float32, bool) {
	if x < 0 || y < 0 || z < 0 || x >= int(d.Dims.X) || y >= int(d.Dims.Y) || z >= int(d.Dims.Z) {
		return 0, false
	}
	i := d.Index(x, y, z)
	if i >= len(d.Values) {
		return 0, false
	}
	return d.Values[i], true
}

// Normalize maps a raw value into [0, 1] by the value range.
// It returns 0 for an empty range.
func (d *Data) Normalize(v float32) float32 {
	if d.Max == d.Min {
		return 0
	}
	return (v - d.Min) / (d.Max - d.Min)
}

// Bounds returns the bounding box of the volume in world space:
// centered on the origin, with the largest dimension spanning 1.
func (d *Data) Bounds() math32.Box3 {
	return math32.B3FromCenterAndSize(math32.Vector3{}, math32.Vector3FromVector3i(d.Dims).MulScalar(d.Scale()))
}

// Scale returns the world size of one voxel: one over the largest dimension.
func (d *Data) Scale() float32 {
	return 1 / float32(d.Dims.MaxComponent())
}

// VoxelAt returns the clamped integer voxel index containing the world
// space point pos, inverting the scale of [Data.Bounds].
func (d *Data) VoxelAt(pos math32.Vector3) (x, y, z int) {
	md := float32(d.Dims.MaxComponent())
	dims := math32.Vector3FromVector3i(d.Dims)
	idx := pos.MulScalar(md).Add(dims.MulScalar(0.5))
	idx.Clamp(math32.Vector3{}, dims.SubScalar(1))
	idx = idx.Floor()
	return int(idx.X), int(idx.Y), int(idx.Z)
}

func (d *Data) String() string {
	return fmt.Sprintf("Volume{%v, range: [%g, %g]}", d.Dims, d.Min, d.Max)
}
