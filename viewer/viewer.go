// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer provides the Viewer, which owns a volume, camera,
// transfer function, and renderer, and validates all of the
// operations applied to them.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/volume/camera"
	"cogentcore.org/volume/math32"
	"cogentcore.org/volume/render"
	"cogentcore.org/volume/transfer"
	"cogentcore.org/volume/volume"
)

// MaxDimension is the largest allowed framebuffer width or height.
const MaxDimension = 16384

var (
	// ErrNoVolume is returned by camera operations before a volume is loaded.
	ErrNoVolume = errors.New("no volume loaded")

	// ErrInvalidParameters is returned for non-finite or malformed inputs.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidSize is returned for a zero framebuffer dimension.
	ErrInvalidSize = errors.New("invalid viewer dimensions")

	// ErrSizeTooLarge is returned for a framebuffer dimension above [MaxDimension].
	ErrSizeTooLarge = errors.New("viewer dimensions too large")

	// ErrInvalidVolume is returned by camera operations on a volume
	// with a zero dimension.
	ErrInvalidVolume = errors.New("invalid volume dimensions")
)

// Decoder converts encoded bytes into equal-sized scalar planes.
type Decoder interface {
	Decode(data []byte) ([]volume.Plane, error)
}

// Viewer is the top level volume viewer. It is not safe for
// concurrent use; callers serialize access.
type Viewer struct {
	vol      *volume.Data
	camera   *camera.Camera
	transfer *transfer.Function
	renderer *render.Renderer
}

// New returns a new viewer with a framebuffer of the given size,
// a default camera, and a grayscale transfer function.
func New(width, height int) (*Viewer, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Viewer{
		camera:   camera.New(),
		transfer: transfer.New(),
		renderer: render.New(width, height),
	}, nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrSizeTooLarge, width, height, MaxDimension)
	}
	return nil
}

// Load replaces the volume with one built from the given planes,
// returning its dimensions. The current volume is kept on error.
func (vw *Viewer) Load(planes []volume.Plane) (math32.Vector3i, error) {
	vol, err := volume.FromPlanes(planes)
	if err != nil {
		return math32.Vector3i{}, err
	}
	vw.vol = vol
	slog.Info("loaded volume", "dims", vol.Dims, "max", vol.Max)
	return vol.Dims, nil
}

// LoadEncoded decodes the given data with the decoder and loads the result.
func (vw *Viewer) LoadEncoded(data []byte, dec Decoder) (math32.Vector3i, error) {
	planes, err := dec.Decode(data)
	if err != nil {
		return math32.Vector3i{}, fmt.Errorf("decoding volume: %w", err)
	}
	return vw.Load(planes)
}

// Render renders the volume and returns the framebuffer, which remains
// owned by the viewer and is overwritten by the next Render. With no
// volume, or one with a zero dimension, the framebuffer is all zero.
func (vw *Viewer) Render() []byte {
	if vw.vol == nil || vw.vol.Dims.HasZero() {
		clear(vw.renderer.Pixels)
		return vw.renderer.Pixels
	}
	vw.renderer.Render(vw.vol, vw.camera, vw.transfer)
	return vw.renderer.Pixels
}

// Image returns the framebuffer as an image, sharing its pixels.
func (vw *Viewer) Image() *image.RGBA {
	return vw.renderer.Image()
}

// checkVolume returns an error unless a usable volume is loaded.
func (vw *Viewer) checkVolume() error {
	if vw.vol == nil {
		return ErrNoVolume
	}
	if vw.vol.Dims.HasZero() {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, vw.vol.Dims)
	}
	return nil
}

// Orbit rotates the camera by the given yaw and pitch deltas in radians,
// each clamped to [-1, 1].
func (vw *Viewer) Orbit(dYaw, dPitch float32) error {
	if !math32.IsFinite(dYaw) || !math32.IsFinite(dPitch) {
		return fmt.Errorf("%w: orbit (%g, %g)", ErrInvalidParameters, dYaw, dPitch)
	}
	if err := vw.checkVolume(); err != nil {
		return err
	}
	vw.camera.Orbit(math32.Clamp(dYaw, -1, 1), math32.Clamp(dPitch, -1, 1))
	return nil
}

// Zoom scales the camera distance by 1+d, with d clamped to [-1, 1].
func (vw *Viewer) Zoom(d float32) error {
	if !math32.IsFinite(d) {
		return fmt.Errorf("%w: zoom %g", ErrInvalidParameters, d)
	}
	if err := vw.checkVolume(); err != nil {
		return err
	}
	vw.camera.Zoom(math32.Clamp(d, -1, 1))
	return nil
}

// Pan moves the camera target by the given two deltas,
// each clamped to [-10, 10].
func (vw *Viewer) Pan(delta []float32) error {
	if len(delta) != 2 {
		return fmt.Errorf("%w: pan delta must be an array of 2 numbers, got %d", ErrInvalidParameters, len(delta))
	}
	if !math32.IsFinite(delta[0]) || !math32.IsFinite(delta[1]) {
		return fmt.Errorf("%w: pan (%g, %g)", ErrInvalidParameters, delta[0], delta[1])
	}
	if err := vw.checkVolume(); err != nil {
		return err
	}
	vw.camera.Pan(math32.Clamp(delta[0], -10, 10), math32.Clamp(delta[1], -10, 10))
	return nil
}

// Resize replaces the framebuffer with a zeroed one of the given size.
func (vw *Viewer) Resize(width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	step := vw.renderer.Step
	vw.renderer = render.New(width, height)
	vw.renderer.Step = step
	return nil
}

// ResetCamera restores the default camera.
func (vw *Viewer) ResetCamera() {
	vw.camera.Reset()
}

// Size returns the framebuffer width and height.
func (vw *Viewer) Size() (width, height int) {
	return vw.renderer.Width, vw.renderer.Height
}

// Camera returns the camera, for inspection.
func (vw *Viewer) Camera() *camera.Camera {
	return vw.camera
}

// Transfer returns the transfer function, which can be edited in place.
func (vw *Viewer) Transfer() *transfer.Function {
	return vw.transfer
}

// SetTransfer replaces the transfer function. A nil function is ignored.
func (vw *Viewer) SetTransfer(tf *transfer.Function) {
	if tf != nil {
		vw.transfer = tf
	}
}

// Volume returns the loaded volume, or nil.
func (vw *Viewer) Volume() *volume.Data {
	return vw.vol
}

// SetStep sets the ray marching step for 3D volumes; it must be
// finite and at least [render.MinStep].
func (vw *Viewer) SetStep(step float32) error {
	if !math32.IsFinite(step) || step < render.MinStep {
		return fmt.Errorf("%w: step %g", ErrInvalidParameters, step)
	}
	vw.renderer.Step = step
	return nil
}
