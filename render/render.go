// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render provides a CPU ray casting volume renderer that
// writes RGBA8 pixels into an owned framebuffer.
package render

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/volume/camera"
	"cogentcore.org/volume/math32"
	"cogentcore.org/volume/transfer"
	"cogentcore.org/volume/volume"
)

// DefaultStep is the default ray marching step in world units.
const DefaultStep = 0.005

// MinStep is the smallest ray marching step accepted by callers
// that validate user input.
const MinStep = 1e-4

// MaxSteps is the largest number of samples taken along one ray.
const MaxSteps = 1 << 16

const (
	// opacityScale scales each sample opacity by the step size.
	opacityScale = 10

	// alphaBoost scales the accumulated alpha for output.
	alphaBoost = 5

	// alphaCutoff is the accumulated alpha at which marching stops.
	alphaCutoff = 0.99
)

// Renderer ray casts volumes into its framebuffer.
type Renderer struct {

	// Width and Height of the framebuffer in pixels.
	Width, Height int

	// Pixels is the RGBA8 framebuffer, Width*Height*4 bytes,
	// rows from the top of the image.
	Pixels []byte

	// Step is the ray marching step in world units for 3D volumes.
	Step float32
}

// New returns a new renderer with a zeroed framebuffer of the given size.
func New(width, height int) *Renderer {
	slog.Info("creating volume renderer", "width", width, "height", height)
	return &Renderer{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*4),
		Step:   DefaultStep,
	}
}

// Image returns the framebuffer as an image, sharing its pixels.
func (r *Renderer) Image() *image.RGBA {
	return &image.RGBA{Pix: r.Pixels, Stride: r.Width * 4, Rect: image.Rect(0, 0, r.Width, r.Height)}
}

// Render draws the volume as seen by the camera into the framebuffer,
// overwriting every pixel. Volumes of depth 1 are drawn as a flat
// grayscale slice, and deeper volumes are composited front to back
// through the transfer function. It panics if the view projection
// matrix is not invertible.
func (r *Renderer) Render(vol *volume.Data, cam *camera.Camera, tf *transfer.Function) {
	slog.Debug("starting volume render", "dims", vol.Dims)
	inv := r.inverseViewProjection(cam)
	box := vol.Bounds()
	slog.Debug("volume bounds", "min", box.Min, "max", box.Max)

	hits := 0
	for y := range r.Height {
		for x := range r.Width {
			ray := r.ray(x, y, inv)
			var c [4]byte
			if vol.Is2D() {
				c = r.cast2D(ray, vol, tf, box)
			} else {
				c = r.cast3D(ray, vol, tf, box)
			}
			if c[3] > 0 {
				hits++
			}
			i := (y*r.Width + x) * 4
			copy(r.Pixels[i:i+4], c[:])
		}
	}
	slog.Debug("render complete", "hits", hits)
}

func (r *Renderer) inverseViewProjection(cam *camera.Camera) *math32.Matrix4 {
	aspect := float32(r.Width) / float32(r.Height)
	vp := cam.ProjectionMatrix(aspect).Mul(cam.ViewMatrix())
	inv, err := vp.Inverse()
	if err != nil {
		panic(fmt.Errorf("render: view projection for %v: %w", cam, err))
	}
	return inv
}

// ray returns the ray through the center of the given pixel, from the
// near plane toward the far plane.
func (r *Renderer) ray(x, y int, inv *math32.Matrix4) *math32.Ray {
	nx := 2*(float32(x)+0.5)/float32(r.Width) - 1
	ny := 1 - 2*(float32(y)+0.5)/float32(r.Height)
	near := math32.Vec4(nx, ny, -1, 1).MulMatrix4(inv).PerspDiv()
	far := math32.Vec4(nx, ny, 1, 1).MulMatrix4(inv).PerspDiv()
	return math32.NewRayThrough(near, far)
}

// cast2D samples the slice once at the middle of the box crossing.
func (r *Renderer) cast2D(ray *math32.Ray, vol *volume.Data, tf *transfer.Function, box math32.Box3) [4]byte {
	tmin, tmax, ok := ray.IntersectBox(box)
	if !ok {
		return [4]byte{}
	}
	x, y, _ := vol.VoxelAt(ray.At((tmin + tmax) * 0.5))
	v, ok := vol.Sample(x, y, 0)
	if !ok {
		return [4]byte{}
	}
	c := tf.Color2D(vol.Normalize(v))
	return [4]byte{uint8(c.X * 255), uint8(c.Y * 255), uint8(c.Z * 255), 255}
}

// cast3D marches through the box in fixed steps, compositing samples.
func (r *Renderer) cast3D(ray *math32.Ray, vol *volume.Data, tf *transfer.Function, box math32.Box3) [4]byte {
	tmin, tmax, ok := ray.IntersectBox(box)
	if !ok {
		return [4]byte{}
	}
	var acc accumulator
	n := steps(tmin, tmax, r.Step)
	for i := 0; i < n && !acc.done(); i++ {
		x, y, z := vol.VoxelAt(ray.At(tmin + float32(i)*r.Step))
		v, ok := vol.Sample(x, y, z)
		if !ok {
			continue
		}
		acc.add(tf.Color3D(vol.Normalize(v)), r.Step)
	}
	return acc.rgba()
}

// steps returns the number of samples taken with the given step from
// tmin up to, and not including, tmax. It is at most [MaxSteps].
func steps(tmin, tmax, step float32) int {
	if !(step > 0) || !(tmax > tmin) {
		return 0
	}
	n := math32.Ceil((tmax - tmin) / step)
	if !(n < MaxSteps) {
		return MaxSteps
	}
	return int(n)
}

// accumulator does front to back compositing of color and opacity.
type accumulator struct {
	color math32.Vector3
	alpha float32
}

// add composites a sample behind what has been accumulated so far.
func (a *accumulator) add(c math32.Vector4, step float32) {
	w := c.W * step * opacityScale * (1 - a.alpha)
	a.color.SetAdd(c.Vector3().MulScalar(w))
	a.alpha += w
}

// done returns true once the accumulated alpha reaches the cutoff.
func (a *accumulator) done() bool {
	return a.alpha >= alphaCutoff
}

// rgba returns the output pixel, with boosted alpha.
func (a *accumulator) rgba() [4]byte {
	return [4]byte{
		uint8(a.color.X * 255),
		uint8(a.color.Y * 255),
		uint8(a.color.Z * 255),
		uint8(math32.Min(a.alpha*alphaBoost, 1) * 255),
	}
}
