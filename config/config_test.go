// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/volume/math32"
	"cogentcore.org/volume/transfer"
	"cogentcore.org/volume/viewer"
	"cogentcore.org/volume/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, 512, c.Width)
	assert.Equal(t, transfer.Grayscale, c.Preset)
	assert.Equal(t, float32(0.005), c.Step)
	assert.Equal(t, 1.0, c.Scale)
}

func TestOpenTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "volview.toml")
	src := `
width = 64
preset = "hot"
orbit = [0.5, -0.25]
zoom = 0.1
`
	require.NoError(t, os.WriteFile(fn, []byte(src), 0666))
	c := New()
	require.NoError(t, c.Open(fn))
	assert.Equal(t, 64, c.Width)
	assert.Equal(t, 512, c.Height)
	assert.Equal(t, transfer.Hot, c.Preset)
	assert.Equal(t, [2]float32{0.5, -0.25}, c.Orbit)
	assert.Equal(t, float32(0.1), c.Zoom)
}

func TestOpenYAML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "volview.yaml")
	src := "height: 32\npreset: cool\npan: [1, 2]\noutput: out.webp\n"
	require.NoError(t, os.WriteFile(fn, []byte(src), 0666))
	c := New()
	require.NoError(t, c.Open(fn))
	assert.Equal(t, 32, c.Height)
	assert.Equal(t, transfer.Cool, c.Preset)
	assert.Equal(t, [2]float32{1, 2}, c.Pan)
	assert.Equal(t, "out.webp", c.Output)
}

func TestOpenErrors(t *testing.T) {
	c := New()
	assert.Error(t, c.Open("volview.ini"))
	assert.Error(t, c.Open(filepath.Join(t.TempDir(), "missing.toml")))

	fn := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`preset = "viridis"`), 0666))
	assert.Error(t, c.Open(fn))
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		c := New()
		c.Preset = transfer.Rainbow
		c.Orbit = [2]float32{0.25, 0.5}
		fn := filepath.Join(t.TempDir(), "cfg"+ext)
		require.NoError(t, c.Save(fn))
		d := &Config{}
		require.NoError(t, d.Open(fn))
		assert.Equal(t, c, d, ext)
	}
}

func TestNewViewer(t *testing.T) {
	c := New()
	c.Width, c.Height = 8, 4
	c.Preset = transfer.Hot
	vw, err := c.NewViewer()
	require.NoError(t, err)
	w, h := vw.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, transfer.NewPreset(transfer.Hot).Points(), vw.Transfer().Points())

	c.Width = 0
	_, err = c.NewViewer()
	assert.ErrorIs(t, err, viewer.ErrInvalidSize)

	c.Width = 8
	c.Step = -1
	_, err = c.NewViewer()
	assert.ErrorIs(t, err, viewer.ErrInvalidParameters)
}

func TestTransferFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tf.toml")
	require.NoError(t, transfer.NewPreset(transfer.Cool).Save(fn))
	c := New()
	c.Transfer = fn
	tf, err := c.TransferFunction()
	require.NoError(t, err)
	assert.Equal(t, 3, tf.Len())
}

func TestApplyCamera(t *testing.T) {
	c := New()
	c.Width, c.Height = 8, 8
	vw, err := c.NewViewer()
	require.NoError(t, err)
	c.Orbit = [2]float32{0.5, 0}
	assert.ErrorIs(t, c.ApplyCamera(vw), viewer.ErrNoVolume)

	_, err = vw.Load([]volume.Plane{volume.NewPlane(2, 2)})
	require.NoError(t, err)
	c.Zoom = 1
	require.NoError(t, c.ApplyCamera(vw))
	assert.InDelta(t, 0.5, vw.Camera().Yaw, 1e-6)
	assert.InDelta(t, 10, vw.Camera().Distance, 1e-5)
	assert.Equal(t, math32.Vector3{}, vw.Camera().Target)
}
