// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"errors"
	"testing"

	"cogentcore.org/volume/math32"
	"cogentcore.org/volume/transfer"
	"cogentcore.org/volume/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(w, h int, v uint16) volume.Plane {
	p := volume.NewPlane(w, h)
	for i := range p.Values {
		p.Values[i] = v
	}
	return p
}

type fakeDecoder struct {
	planes []volume.Plane
	err    error
}

func (d fakeDecoder) Decode(data []byte) ([]volume.Plane, error) {
	return d.planes, d.err
}

func loaded(t *testing.T) *Viewer {
	t.Helper()
	vw, err := New(16, 16)
	require.NoError(t, err)
	_, err = vw.Load([]volume.Plane{flat(4, 4, 128)})
	require.NoError(t, err)
	return vw
}

func TestNew(t *testing.T) {
	_, err := New(0, 10)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(10, 0)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(MaxDimension+1, 10)
	assert.ErrorIs(t, err, ErrSizeTooLarge)

	vw, err := New(MaxDimension, 1)
	require.NoError(t, err)
	w, h := vw.Size()
	assert.Equal(t, MaxDimension, w)
	assert.Equal(t, 1, h)
	assert.Nil(t, vw.Volume())
}

func TestRenderWithoutVolume(t *testing.T) {
	vw, err := New(4, 3)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 4*3*4), vw.Render())
}

func TestLoad(t *testing.T) {
	vw, err := New(8, 8)
	require.NoError(t, err)
	dims, err := vw.Load([]volume.Plane{flat(4, 4, 128), flat(4, 4, 300)})
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3i(4, 4, 2), dims)
	assert.Equal(t, float32(65535), vw.Volume().Max)

	// a failed load keeps the current volume
	_, err = vw.Load([]volume.Plane{flat(4, 4, 1), flat(2, 2, 1)})
	assert.ErrorIs(t, err, volume.ErrInconsistentPlanes)
	assert.Equal(t, dims, vw.Volume().Dims)

	_, err = vw.Load(nil)
	assert.ErrorIs(t, err, volume.ErrNoPlanes)
}

func TestLoadEncoded(t *testing.T) {
	vw, err := New(8, 8)
	require.NoError(t, err)
	dims, err := vw.LoadEncoded(nil, fakeDecoder{planes: []volume.Plane{flat(3, 2, 5)}})
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3i(3, 2, 1), dims)

	bad := errors.New("bad header")
	_, err = vw.LoadEncoded(nil, fakeDecoder{err: bad})
	assert.ErrorIs(t, err, bad)
}

func TestRender2D(t *testing.T) {
	vw := loaded(t)
	pix := vw.Render()
	assert.Len(t, pix, 16*16*4)
	i := (8*16 + 8) * 4
	assert.InDelta(t, 128, pix[i], 1)
	assert.Equal(t, uint8(255), pix[i+3])
	assert.Equal(t, pix[i], vw.Image().RGBAAt(8, 8).R)
}

func TestControlsNeedVolume(t *testing.T) {
	vw, err := New(8, 8)
	require.NoError(t, err)
	assert.ErrorIs(t, vw.Orbit(0.1, 0.1), ErrNoVolume)
	assert.ErrorIs(t, vw.Zoom(0.1), ErrNoVolume)
	assert.ErrorIs(t, vw.Pan([]float32{1, 1}), ErrNoVolume)

	// finiteness is checked first
	assert.ErrorIs(t, vw.Orbit(math32.Inf(1), 0), ErrInvalidParameters)
	assert.ErrorIs(t, vw.Pan([]float32{1}), ErrInvalidParameters)
}

func TestControlsInvalid(t *testing.T) {
	vw := loaded(t)
	nan := math32.Sqrt(-1)
	assert.ErrorIs(t, vw.Orbit(nan, 0), ErrInvalidParameters)
	assert.ErrorIs(t, vw.Orbit(0, math32.Inf(-1)), ErrInvalidParameters)
	assert.ErrorIs(t, vw.Zoom(nan), ErrInvalidParameters)
	assert.ErrorIs(t, vw.Pan([]float32{nan, 0}), ErrInvalidParameters)
	err := vw.Pan([]float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidParameters)
	assert.Contains(t, err.Error(), "array of 2 numbers")
	assert.ErrorIs(t, vw.SetStep(0), ErrInvalidParameters)
	assert.ErrorIs(t, vw.SetStep(1e-8), ErrInvalidParameters)
	assert.ErrorIs(t, vw.SetStep(5e-5), ErrInvalidParameters)
	assert.NoError(t, vw.SetStep(1e-4))
	assert.NoError(t, vw.SetStep(0.01))
}

func TestControlsZeroVolume(t *testing.T) {
	vw, err := New(8, 8)
	require.NoError(t, err)
	_, err = vw.Load([]volume.Plane{{}})
	require.NoError(t, err)
	assert.ErrorIs(t, vw.Orbit(0.1, 0), ErrInvalidVolume)
	assert.ErrorIs(t, vw.Zoom(0.1), ErrInvalidVolume)
	assert.ErrorIs(t, vw.Pan([]float32{0, 0}), ErrInvalidVolume)
	assert.Equal(t, make([]byte, 8*8*4), vw.Render())
}

func TestControlsClamp(t *testing.T) {
	vw := loaded(t)
	cam := vw.Camera()
	require.NoError(t, vw.Orbit(5, -0.25))
	assert.InDelta(t, 1, cam.Yaw, 1e-6)
	assert.InDelta(t, math32.Pi/4-0.25, cam.Pitch, 1e-6)

	require.NoError(t, vw.Zoom(100))
	assert.InDelta(t, 10, cam.Distance, 1e-5)
	require.NoError(t, vw.Zoom(-100))
	assert.InDelta(t, 0.2, cam.Distance, 1e-5)

	vw.ResetCamera()
	require.NoError(t, vw.Orbit(0, -math32.Pi/4))
	require.NoError(t, vw.Pan([]float32{1000, 0}))
	// clamped to 10 * distance 5 * 0.001
	assert.InDelta(t, 0.05, cam.Target.X, 1e-5)
}

func TestResize(t *testing.T) {
	vw, err := New(100, 100)
	require.NoError(t, err)
	_, err = vw.Load([]volume.Plane{flat(4, 4, 200)})
	require.NoError(t, err)
	require.NoError(t, vw.SetStep(0.02))
	vw.Render()

	require.NoError(t, vw.Resize(50, 50))
	w, h := vw.Size()
	assert.Equal(t, 50, w)
	assert.Equal(t, 50, h)
	assert.Equal(t, make([]byte, 50*50*4), vw.Image().Pix)
	assert.Equal(t, float32(0.02), vw.renderer.Step)

	assert.ErrorIs(t, vw.Resize(0, 5), ErrInvalidSize)
	assert.ErrorIs(t, vw.Resize(5, MaxDimension+1), ErrSizeTooLarge)
	w, _ = vw.Size()
	assert.Equal(t, 50, w)
}

func TestSetTransfer(t *testing.T) {
	vw := loaded(t)
	hot := transfer.NewPreset(transfer.Hot)
	vw.SetTransfer(hot)
	assert.Same(t, hot, vw.Transfer())
	vw.SetTransfer(nil)
	assert.Same(t, hot, vw.Transfer())
}
